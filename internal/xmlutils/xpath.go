// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CharsetReader decodes documents declaring a non UTF-8 encoding, such as
// the ISO-8859-1 exports common in property-management systems.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unknown XML encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported XML encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// NewDecoder returns an encoding/xml decoder that understands declared
// charsets.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = CharsetReader
	return d
}

// ParseXML parses an XML document held in memory into an XPath root node.
func ParseXML(data []byte) (*xmlpath.Node, error) {
	root, err := xmlpath.ParseDecoder(NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// LoadXMLFile loads an XML file and returns the XML root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.ParseDecoder(NewDecoder(file))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}

	return root, nil
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// ExtractWithXPath extracts values from an XML file using an XPath expression
func ExtractWithXPath(xmlFilePath, xpath string) ([]string, error) {
	root, err := LoadXMLFile(xmlFilePath)
	if err != nil {
		return nil, err
	}

	return ExtractFromXML(root, xpath)
}

// CleanText collapses runs of whitespace, including newlines and tabs, into
// single spaces and trims the result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
