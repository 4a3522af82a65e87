package sqlinsert

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// represents an output rendering of a parsed statement
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var FORMATS = []Format{FormatText, FormatJSON, FormatYAML}

// Write renders parsed to w in the requested format.
func Write(w io.Writer, parsed *ParsedInsert, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, parsed)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(parsed)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(parsed); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("Unknown format %q. Allowed values: %v", format, FORMATS)
}

// WriteText prints the header line followed by one padded column/value pair per line:
//
//	INSERT INTO users u:
//	  id   : 1
//	  name : 'bob'
func WriteText(w io.Writer, parsed *ParsedInsert) error {
	header := "INSERT INTO " + parsed.TableName
	if parsed.Alias != nil {
		header += " " + *parsed.Alias
	}
	if _, err := fmt.Fprintf(w, "%s:\n", header); err != nil {
		return err
	}

	width := 0
	for _, column := range parsed.Columns {
		width = max(width, utf8.RuneCountInString(column))
	}
	for _, pair := range parsed.Pairs() {
		if _, err := fmt.Fprintf(w, "  %-*s : %s\n", width, pair.Column, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
