package scraper

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Source is a named news site. The date in DD-MM-YYYY form is appended
// to URL to address one day's page.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultSources returns the built-in source list. Order matters: the
// aggregate preserves it.
func DefaultSources() []Source {
	return []Source{
		{
			Name: "drishti",
			URL:  "https://www.drishtiias.com/current-affairs-news-analysis-editorials/news-analysis/",
		},
		{
			Name: "indianexpress",
			URL:  "https://indianexpress.com/about/current-affairs/",
		},
	}
}

// LoadSources reads a source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sources file", goerr.Value("path", path))
	}

	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, goerr.Wrap(err, "failed to parse sources file", goerr.Value("path", path))
	}

	for _, src := range sources {
		if src.Name == "" || src.URL == "" {
			return nil, goerr.New("source entry needs both name and url", goerr.V("source", src))
		}
	}

	return sources, nil
}
