package datasource

type Capabilities int

const (
	Filtering Capabilities = 1 << iota
	Sorting
	Pagination
	LazyPages
)

func (c Capabilities) Has(caps Capabilities) bool { return c&caps == caps }

func (c Capabilities) String() string {
	names := ""
	for _, item := range []struct {
		cap  Capabilities
		name string
	}{{Filtering, "Filtering"}, {Sorting, "Sorting"}, {Pagination, "Pagination"}, {LazyPages, "LazyPages"}} {
		if c.Has(item.cap) {
			if names != "" {
				names += "|"
			}
			names += item.name
		}
	}
	if names == "" {
		return "None"
	}
	return names
}
