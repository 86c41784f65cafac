package banner

// Banner is a promotional card on the home screen.
type Banner struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Image    *string `json:"image,omitempty"`
	Link     *string `json:"link,omitempty"`
	Order    int     `json:"-"`
}
