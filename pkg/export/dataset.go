package export

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Sheet pairs a dataset with the tab name it renders under.
type Sheet struct {
	Name string
	Data Dataset
}
