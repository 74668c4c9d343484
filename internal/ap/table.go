package ap

// band is a closed integer range.
type band struct {
	lo, hi int
}

func (b band) contains(v int) bool {
	return v >= b.lo && v <= b.hi
}

var (
	severityBands   = []band{{9, 10}, {7, 8}, {4, 6}, {2, 3}}
	occurrenceBands = []band{{8, 10}, {6, 7}, {4, 5}, {2, 3}, {1, 1}}

	// detectionBands are the four columns of every row, in column order.
	detectionBands = []band{{7, 10}, {5, 6}, {2, 4}, {1, 1}}
)

// row is one line of the table: a severity band, an occurrence band and
// the priority for each detection column.
type row struct {
	severity   band
	occurrence band
	priorities [4]Priority
}

// table holds the 20 rows of the handbook, severity-major.
var table = []row{
	{band{9, 10}, band{8, 10}, [4]Priority{High, High, High, High}},
	{band{9, 10}, band{6, 7}, [4]Priority{High, High, High, High}},
	{band{9, 10}, band{4, 5}, [4]Priority{High, High, Low, Low}},
	{band{9, 10}, band{2, 3}, [4]Priority{High, Medium, Low, Low}},
	{band{9, 10}, band{1, 1}, [4]Priority{High, Low, Low, Low}},

	{band{7, 8}, band{8, 10}, [4]Priority{High, High, High, High}},
	{band{7, 8}, band{6, 7}, [4]Priority{High, High, Medium, High}},
	{band{7, 8}, band{4, 5}, [4]Priority{High, Medium, Low, Low}},
	{band{7, 8}, band{2, 3}, [4]Priority{Medium, Low, Low, Low}},
	{band{7, 8}, band{1, 1}, [4]Priority{Low, Low, Low, Low}},

	{band{4, 6}, band{8, 10}, [4]Priority{High, High, Medium, Low}},
	{band{4, 6}, band{6, 7}, [4]Priority{High, Medium, Low, Low}},
	{band{4, 6}, band{4, 5}, [4]Priority{High, Medium, Low, Low}},
	{band{4, 6}, band{2, 3}, [4]Priority{Medium, Low, Low, Low}},
	{band{4, 6}, band{1, 1}, [4]Priority{Low, Low, Low, Low}},

	{band{2, 3}, band{8, 10}, [4]Priority{Medium, Low, Low, Low}},
	{band{2, 3}, band{6, 7}, [4]Priority{Low, Low, Low, Low}},
	{band{2, 3}, band{4, 5}, [4]Priority{Low, Low, Low, Low}},
	{band{2, 3}, band{2, 3}, [4]Priority{Low, Low, Low, Low}},
	{band{2, 3}, band{1, 1}, [4]Priority{Low, Low, Low, Low}},
}

// index maps (severity band, occurrence band) to a table row. Built once
// from table so a lookup is two band scans and a slice index.
var index = buildIndex()

func buildIndex() [][]int {
	idx := make([][]int, len(severityBands))
	for s := range severityBands {
		idx[s] = make([]int, len(occurrenceBands))
		for o := range occurrenceBands {
			idx[s][o] = -1
		}
	}
	for i, r := range table {
		s := bandIndex(severityBands, r.severity.lo)
		o := bandIndex(occurrenceBands, r.occurrence.lo)
		if s < 0 || o < 0 || idx[s][o] >= 0 {
			panic("ap: malformed action priority table")
		}
		idx[s][o] = i
	}
	for s := range idx {
		for o := range idx[s] {
			if idx[s][o] < 0 {
				panic("ap: action priority table is missing a row")
			}
		}
	}
	return idx
}

func bandIndex(bands []band, v int) int {
	for i, b := range bands {
		if b.contains(v) {
			return i
		}
	}
	return -1
}
