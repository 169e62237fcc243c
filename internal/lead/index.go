package lead

// Index holds one owner's normalized identifying keys for duplicate
// rejection. It is built once per pipeline run and owned exclusively
// by the run's driver goroutine; it is not safe for concurrent use.
type Index struct {
	websites map[string]struct{}
	phones   map[string]struct{}
	names    map[string]struct{}
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		websites: make(map[string]struct{}),
		phones:   make(map[string]struct{}),
		names:    make(map[string]struct{}),
	}
}

// BuildIndex normalizes the identifying fields of every stored lead
// into the three key sets. Absent fields are skipped.
func BuildIndex(leads []Lead) *Index {
	ix := NewIndex()
	for _, l := range leads {
		if key, ok := NormalizeWebsite(l.Website); ok {
			ix.websites[key] = struct{}{}
		}
		if key, ok := NormalizePhone(l.Phone); ok {
			ix.phones[key] = struct{}{}
		}
		if key, ok := NormalizeName(l.Name); ok {
			ix.names[key] = struct{}{}
		}
	}
	return ix
}

// Duplicate reports whether the candidate matches a known lead and
// names the field that matched. Website and phone are checked before
// name because they are higher-precision identifiers; the first
// matching non-absent key wins.
func (ix *Index) Duplicate(c Candidate) (string, bool) {
	if key, ok := NormalizeWebsite(c.Website); ok {
		if _, hit := ix.websites[key]; hit {
			return "website", true
		}
	}
	if key, ok := NormalizePhone(c.Phone); ok {
		if _, hit := ix.phones[key]; hit {
			return "phone", true
		}
	}
	if key, ok := NormalizeName(c.Name); ok {
		if _, hit := ix.names[key]; hit {
			return "name", true
		}
	}
	return "", false
}

// Absorb records all three of the candidate's normalized keys so
// later candidates in the same run are rejected against it.
func (ix *Index) Absorb(c Candidate) {
	if key, ok := NormalizeWebsite(c.Website); ok {
		ix.websites[key] = struct{}{}
	}
	if key, ok := NormalizePhone(c.Phone); ok {
		ix.phones[key] = struct{}{}
	}
	if key, ok := NormalizeName(c.Name); ok {
		ix.names[key] = struct{}{}
	}
}

// Sizes returns the cardinality of each key set, for startup logging.
func (ix *Index) Sizes() (websites, phones, names int) {
	return len(ix.websites), len(ix.phones), len(ix.names)
}
