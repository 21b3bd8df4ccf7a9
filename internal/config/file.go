package config

// File holds the options that can be set through the configuration file.
// The file is YAML, named .pysde2json by default:
//
//	baseUrl: https://sde-mirror.example.org/dump
//	pretty: true
//	tables:
//	  include:
//	    - invTypes
//	    - invGroups
//	  exclude:
//	    - trnTranslations
type File struct {
	// BaseURL overrides the download host, e.g. for a local mirror.
	BaseURL string `yaml:"baseUrl,omitempty"`

	// Pretty enables indented JSON output files.
	Pretty bool `yaml:"pretty,omitempty"`

	// Tables filters which tables are converted.
	Tables TableFilter `yaml:"tables,omitempty"`
}

// TableFilter selects tables by name. An empty include list means all
// tables; excludes are applied afterwards.
type TableFilter struct {
	// Include lists the tables to convert. Empty means every table.
	Include []string `yaml:"include,omitempty"`

	// Exclude lists tables to skip even when included.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Match reports whether the named table should be converted.
func (f TableFilter) Match(name string) bool {
	for _, e := range f.Exclude {
		if e == name {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}
	for _, i := range f.Include {
		if i == name {
			return true
		}
	}
	return false
}
