package model

// Catalog is the ordered list of templates offered by the chooser.
type Catalog struct {
	Templates []Template `yaml:"templates"`
}

// Names returns the template names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Templates))
	for _, t := range c.Templates {
		names = append(names, t.Name)
	}
	return names
}

// Lookup returns the template with the exact name.
func (c *Catalog) Lookup(name string) (Template, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
