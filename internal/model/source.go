package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	FullPath  Path   `yaml:"full_path"`
	ShortPath Path   `yaml:"short_path"`
	Hash      string `yaml:"hash"`
}

// Source pairs a script file with the test file that exercises it, if any.
type Source struct {
	Origin *File `yaml:"origin"`
	Test   *File `yaml:"test,omitempty"`
}
