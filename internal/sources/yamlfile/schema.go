package yamlfile

// Config is the root structure of a seed file.
type Config struct {
	Roots []Entry `yaml:"roots"`
}

// Entry is one node in the seed tree. Exactly one of url, separator or
// children is expected; an entry with none of them is an empty folder.
type Entry struct {
	Title     string  `yaml:"title"`
	URL       string  `yaml:"url,omitempty"`
	Separator bool    `yaml:"separator,omitempty"`
	Children  []Entry `yaml:"children,omitempty"`
}
