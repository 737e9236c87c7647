// Package report is a minimal model of a report design (.rptdesign) document.
// It reads and writes the design XML and exposes the library-level properties
// the new-report flow sets: display name, description and icon file.
package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Namespace is the report design XML namespace.
const Namespace = "http://www.eclipse.org/birt/2005/design"

// RootTag is the root element of a report design.
const RootTag = "report"

// Design property names.
const (
	PropDisplayName = "displayName"
	PropDescription = "description"
	PropIconFile    = "iconFile"
)

// Element tags for simple properties.
const (
	tagProperty     = "property"
	tagTextProperty = "text-property"
)

// propertyTags are the child tags that hold element properties. New
// properties are inserted after the last of these.
var propertyTags = map[string]bool{
	"property":           true,
	"text-property":      true,
	"expression":         true,
	"list-property":      true,
	"structure":          true,
	"method":             true,
	"html-property":      true,
	"encrypted-property": true,
	"xml-property":       true,
}

// iconExtensions are the image types accepted for the icon file.
var iconExtensions = map[string]bool{
	".gif":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".ico":  true,
}

// ErrNotReportDesign is returned when the XML root is not a report element.
var ErrNotReportDesign = errors.New("document is not a report design")

// Design is an in-memory report design document bound to a file path.
type Design struct {
	path         string
	doc          *etree.Document
	restructured bool
}

// Open reads the design at path.
func Open(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open report design %s", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}

// Parse reads a design from r. path is where Save writes it back.
func Parse(r io.Reader, path string) (*Design, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrapf(err, "failed to parse report design %s", path)
	}

	root := doc.Root()
	if root == nil || root.Tag != RootTag {
		return nil, errors.Wrapf(ErrNotReportDesign, "%s", path)
	}

	return &Design{path: path, doc: doc}, nil
}

// Path returns the file the design is saved to.
func (d *Design) Path() string {
	return d.path
}

// Version returns the design file format version.
func (d *Design) Version() string {
	return d.doc.Root().SelectAttrValue("version", "")
}

// DisplayName returns the report display name.
func (d *Design) DisplayName() string {
	return d.property(tagTextProperty, PropDisplayName)
}

// Description returns the report description.
func (d *Design) Description() string {
	return d.property(tagTextProperty, PropDescription)
}

// IconFile returns the report icon file path.
func (d *Design) IconFile() string {
	return d.property(tagProperty, PropIconFile)
}

// SetDisplayName sets the display name. An empty value clears it.
func (d *Design) SetDisplayName(value string) error {
	if err := checkText(PropDisplayName, value); err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return newSemanticError(PropDisplayName, value, "must be a single line")
	}
	d.setProperty(tagTextProperty, PropDisplayName, value)
	return nil
}

// SetDescription sets the description. An empty value clears it.
func (d *Design) SetDescription(value string) error {
	if err := checkText(PropDescription, value); err != nil {
		return err
	}
	d.setProperty(tagTextProperty, PropDescription, value)
	return nil
}

// SetIconFile sets the icon file. An empty value clears it.
func (d *Design) SetIconFile(value string) error {
	if err := checkText(PropIconFile, value); err != nil {
		return err
	}
	if value != "" {
		ext := strings.ToLower(filepath.Ext(value))
		if !iconExtensions[ext] {
			return newSemanticError(PropIconFile, value, "icon must be a gif, png, jpg, bmp or ico image")
		}
	}
	d.setProperty(tagProperty, PropIconFile, value)
	return nil
}

// Save writes the design back to its path.
func (d *Design) Save() error {
	return d.SaveAs(d.path)
}

// SaveAs writes the design to path and rebinds the design to it.
func (d *Design) SaveAs(path string) error {
	if d.restructured {
		d.doc.Indent(4)
		d.restructured = false
	}
	if err := d.doc.WriteToFile(path); err != nil {
		return errors.Wrapf(err, "failed to save report design %s", path)
	}
	d.path = path
	return nil
}

// WriteTo writes the design XML to w.
func (d *Design) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

func (d *Design) findProperty(tag, name string) *etree.Element {
	for _, child := range d.doc.Root().ChildElements() {
		if child.Tag == tag && child.SelectAttrValue("name", "") == name {
			return child
		}
	}
	return nil
}

func (d *Design) property(tag, name string) string {
	if el := d.findProperty(tag, name); el != nil {
		return el.Text()
	}
	return ""
}

func (d *Design) setProperty(tag, name, value string) {
	root := d.doc.Root()
	existing := d.findProperty(tag, name)

	if value == "" {
		if existing != nil {
			root.RemoveChild(existing)
			d.restructured = true
		}
		return
	}

	if existing != nil {
		// Localized text properties carry a resource key; an explicit value replaces it
		existing.RemoveAttr("key")
		existing.SetText(value)
		return
	}

	el := etree.NewElement(tag)
	el.CreateAttr("name", name)
	el.SetText(value)

	index := 0
	for _, child := range root.ChildElements() {
		if !propertyTags[child.Tag] {
			break
		}
		index = child.Index() + 1
	}
	root.InsertChildAt(index, el)
	d.restructured = true
}

// checkText rejects control characters that cannot be stored in the design.
func checkText(property, value string) error {
	for _, r := range value {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return newSemanticError(property, value, "contains control characters")
		}
	}
	return nil
}

// Problems lists the ways the design would be rejected by the designer.
// A parseable design with no problems returns nil.
func (d *Design) Problems() []string {
	var problems []string
	if d.Version() == "" {
		problems = append(problems, "missing version attribute")
	}
	if err := checkText(PropDisplayName, d.DisplayName()); err != nil {
		problems = append(problems, err.Error())
	}
	if err := checkText(PropDescription, d.Description()); err != nil {
		problems = append(problems, err.Error())
	}
	if icon := d.IconFile(); icon != "" && !iconExtensions[strings.ToLower(filepath.Ext(icon))] {
		problems = append(problems, "icon file "+icon+" is not a gif, png, jpg, bmp or ico image")
	}
	return problems
}
