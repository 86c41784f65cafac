package category

// Category groups products on the home screen. JSON tags follow the
// camelCase convention used elsewhere in the project.
type Category struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
	Order int     `json:"-"`
}
