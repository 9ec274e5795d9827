package domain

// Target is the rendering shape a caller wants.
type Target string

const (
	TargetTable  Target = "table"
	TargetBar    Target = "bar"
	TargetColumn Target = "column"
	TargetLine   Target = "line"
	TargetSankey Target = "sankey"
)

func (t Target) Valid() bool {
	switch t {
	case TargetTable, TargetBar, TargetColumn, TargetLine, TargetSankey:
		return true
	}
	return false
}

// IsChart reports whether labels are abbreviated for this target.
func (t Target) IsChart() bool {
	return t == TargetBar || t == TargetColumn || t == TargetLine || t == TargetSankey
}

type TableColumn struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type FormattedTable struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
}

// Series is one line/bar group. A nil value marks a cell without data.
type Series struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

type ChartData struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
	Unit       string   `json:"unit"`
}

type SankeyNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type SankeyEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

type SankeyData struct {
	Nodes []SankeyNode `json:"nodes"`
	Edges []SankeyEdge `json:"edges"`
	Unit  string       `json:"unit"`
}

// FormattedResult holds exactly one of Table, Chart or Sankey.
type FormattedResult struct {
	Target Target          `json:"target"`
	Metric string          `json:"metric"`
	Table  *FormattedTable `json:"table,omitempty"`
	Chart  *ChartData      `json:"chart,omitempty"`
	Sankey *SankeyData     `json:"sankey,omitempty"`
	Meta   ResultMeta      `json:"meta"`
}
