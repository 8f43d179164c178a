// Package snapshot defines the on-disk form of a compiled symbol snapshot, the
// artifact the compiler front-end emits for each source file or reference assembly.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is one decoded snapshot
type File struct {
	// Assembly is the declaring assembly of every type in the file
	Assembly string `json:"assembly" yaml:"assembly"`
	// Source is the source path reported in locations; defaults to Path
	Source string     `json:"file,omitempty" yaml:"file,omitempty"`
	Types  []TypeDecl `json:"types" yaml:"types"`

	// Path is the file the snapshot was read from
	Path string `json:"-" yaml:"-"`
}

// TypeDecl is a declared type
type TypeDecl struct {
	Name           string          `json:"name" yaml:"name"`
	Namespace      string          `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Kind           string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Accessibility  string          `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	Abstract       bool            `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Static         bool            `json:"static,omitempty" yaml:"static,omitempty"`
	Base           string          `json:"base,omitempty" yaml:"base,omitempty"`
	Interfaces     []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	TypeParameters []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Attributes     []AttributeDecl `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Members        []MemberDecl    `json:"members,omitempty" yaml:"members,omitempty"`
	Nested         []TypeDecl      `json:"nested,omitempty" yaml:"nested,omitempty"`
	// Invoke is the invocation signature of a delegate
	Invoke *MemberDecl `json:"invoke,omitempty" yaml:"invoke,omitempty"`
	Line   int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column int         `json:"column,omitempty" yaml:"column,omitempty"`
}

// MemberDecl is a method, constructor, property or field
type MemberDecl struct {
	Kind          string `json:"kind" yaml:"kind"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Accessibility string `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	Static        bool   `json:"static,omitempty" yaml:"static,omitempty"`
	Extension     bool   `json:"extension,omitempty" yaml:"extension,omitempty"`
	// Returns is the return type of a method; empty means void
	Returns string `json:"returns,omitempty" yaml:"returns,omitempty"`
	// Type is the type of a property or field
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Getter and Setter hold accessor accessibility; empty means not declared
	Getter         string          `json:"getter,omitempty" yaml:"getter,omitempty"`
	Setter         string          `json:"setter,omitempty" yaml:"setter,omitempty"`
	ReadOnly       bool            `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Const          bool            `json:"const,omitempty" yaml:"const,omitempty"`
	Parameters     []ParameterDecl `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	TypeParameters []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Attributes     []AttributeDecl `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Line           int             `json:"line,omitempty" yaml:"line,omitempty"`
	Column         int             `json:"column,omitempty" yaml:"column,omitempty"`
}

// ParameterDecl is a method parameter
type ParameterDecl struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	RefKind string `json:"refKind,omitempty" yaml:"refKind,omitempty"`
}

// AttributeDecl is an attribute application
type AttributeDecl struct {
	Type   string         `json:"type" yaml:"type"`
	Args   []any          `json:"args,omitempty" yaml:"args,omitempty"`
	Named  []NamedArgDecl `json:"named,omitempty" yaml:"named,omitempty"`
	Line   int            `json:"line,omitempty" yaml:"line,omitempty"`
	Column int            `json:"column,omitempty" yaml:"column,omitempty"`
}

// NamedArgDecl is a named attribute argument. Named arguments are a list so that
// declaration order survives decoding.
type NamedArgDecl struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Format is the encoding of a snapshot file
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from the file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// IsSnapshotPath reports whether path has a snapshot file extension
func IsSnapshotPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses a snapshot. Unknown JSON fields are rejected so that typos in
// hand-written snapshots surface instead of silently dropping declarations.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if f.Assembly == "" {
		return nil, fmt.Errorf("snapshot has no assembly name")
	}
	return &f, nil
}

// SourcePath returns the path reported in diagnostics for declarations of f
func (f *File) SourcePath() string {
	if f.Source != "" {
		return f.Source
	}
	return f.Path
}
