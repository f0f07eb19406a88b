package domain

// Office is a physical location assets are assigned to. Names are stored in
// normalized form and are unique.
type Office struct {
	ID   int64
	Name string
}
