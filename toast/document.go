package toast

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type toastElement struct {
	XMLName  xml.Name      `xml:"toast"`
	Launch   string        `xml:"launch,attr,omitempty"`
	Duration string        `xml:"duration,attr,omitempty"`
	Visual   visualElement `xml:"visual"`
	Audio    *audioElement `xml:"audio,omitempty"`
}

type visualElement struct {
	Binding bindingElement `xml:"binding"`
}

type bindingElement struct {
	Template string        `xml:"template,attr"`
	Image    *imageElement `xml:"image,omitempty"`
	Texts    []textElement `xml:"text"`
}

type imageElement struct {
	ID  string `xml:"id,attr"`
	Src string `xml:"src,attr"`
}

type textElement struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type audioElement struct {
	Src    string `xml:"src,attr,omitempty"`
	Loop   string `xml:"loop,attr,omitempty"`
	Silent string `xml:"silent,attr,omitempty"`
}

// skeleton returns the empty document of a template: one image placeholder
// when the template has an image slot and one empty text element per slot.
func skeleton(t Template) toastElement {
	info := t.Info()
	root := toastElement{
		Visual: visualElement{Binding: bindingElement{Template: info.Name}},
	}
	if info.HasImage {
		root.Visual.Binding.Image = &imageElement{ID: "1"}
	}
	root.Visual.Binding.Texts = make([]textElement, info.TextSlots)
	for i := range root.Visual.Binding.Texts {
		root.Visual.Binding.Texts[i].ID = strconv.Itoa(i + 1)
	}
	return root
}

// Audio summarizes the audio element of a document.
type Audio struct {
	Present bool
	Silent  bool
	Src     string
	Loop    bool
}

// Document is a finished toast notification. It is never modified after it
// is returned, so it can be shared freely.
type Document struct {
	root toastElement
	// raw holds the original bytes of a parsed document, which are
	// rendered verbatim.
	raw []byte
}

// ParseDocument reads a stored toast document. The bytes are kept and
// rendered unchanged by XML.
func ParseDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}
	var root toastElement
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Document{root: root, raw: bytes.Clone(data)}, nil
}

// XML renders the document.
func (d *Document) XML() ([]byte, error) {
	if d.raw != nil {
		return bytes.Clone(d.raw), nil
	}
	out, err := xml.Marshal(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to render toast document: %w", err)
	}
	return out, nil
}

func (d *Document) String() string {
	out, err := d.XML()
	if err != nil {
		return ""
	}
	return string(out)
}

// TemplateName is the binding template attribute.
func (d *Document) TemplateName() string {
	return d.root.Visual.Binding.Template
}

// Lines returns the text content of every text element in order.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.root.Visual.Binding.Texts))
	for i, t := range d.root.Visual.Binding.Texts {
		lines[i] = strings.TrimSpace(t.Text)
	}
	return lines
}

// ImageSource returns the src of the image element, or "" without one.
func (d *Document) ImageSource() string {
	if d.root.Visual.Binding.Image == nil {
		return ""
	}
	return d.root.Visual.Binding.Image.Src
}

// LongDuration reports whether the root carries duration="long".
func (d *Document) LongDuration() bool {
	return d.root.Duration == durationLong
}

// Launch returns the launch argument of the root, or "" without one.
func (d *Document) Launch() string {
	return d.root.Launch
}

// Audio returns the audio element of the document.
func (d *Document) Audio() Audio {
	a := d.root.Audio
	if a == nil {
		return Audio{}
	}
	return Audio{
		Present: true,
		Silent:  a.Silent == "true",
		Src:     a.Src,
		Loop:    a.Loop == "true",
	}
}
