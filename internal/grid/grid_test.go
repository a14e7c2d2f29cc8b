package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dockfinder-cli/internal/dataset"
)

func listings(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse("city,contains_dock,url,listing_price\n"+
		"Gainesville,false,https://withroam.com/listing/1,\"$350,000\"\n"+
		"Athens,true,https://withroam.com/listing/2,\"$95,000\"\n"+
		"Lakemont,TRUE,not a url,\"$1,200,000\"\n"+
		"Macon,false,https://withroam.com/listing/4,\"$210,000\"\n", dataset.DefaultOptions())
	require.NoError(t, err)
	return ds
}

func columnNames(f Frame) []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}

func firstCells(f Frame) []string {
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r[0].Text
	}
	return out
}

func TestDefaultStateSortsByDockDescending(t *testing.T) {
	ds := listings(t)
	s := DefaultState(ds, dataset.DockSortColumn)
	assert.Equal(t, 1, s.SortCol)
	assert.Equal(t, Descending, s.SortDir)

	f := Build(ds, s).Frame()
	assert.Equal(t, []string{"Athens", "Lakemont", "Gainesville", "Macon"}, firstCells(f))
}

func TestDefaultStateWithoutDockColumnKeepsInsertionOrder(t *testing.T) {
	ds, err := dataset.Parse("city,url\nB,x\nA,y\nC,z\n", dataset.DefaultOptions())
	require.NoError(t, err)
	s := DefaultState(ds, dataset.DockSortColumn)
	assert.Equal(t, -1, s.SortCol)
	assert.Equal(t, Unsorted, s.SortDir)
	assert.Equal(t, []string{"B", "A", "C"}, firstCells(Build(ds, s).Frame()))
}

func TestNumericSort(t *testing.T) {
	ds := listings(t)
	s, changed := Update(NewState(ds.Width()), SortChanged{Column: 3, Direction: Ascending})
	require.True(t, changed)
	assert.Equal(t, []string{"Athens", "Macon", "Gainesville", "Lakemont"}, firstCells(Build(ds, s).Frame()))
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	ds := listings(t)
	s, changed := Update(NewState(ds.Width()), FilterChanged{Column: 0, Value: "ON"})
	require.True(t, changed)
	f := Build(ds, s).Frame()
	assert.Equal(t, []string{"Lakemont", "Macon"}, firstCells(f))
	assert.Equal(t, 4, f.Total)

	// Link cells filter on their rendered text.
	s, _ = Update(s, FilterChanged{Column: 2, Value: "listing/4"})
	assert.Equal(t, []string{"Macon"}, firstCells(Build(ds, s).Frame()))
}

func TestFilterUnchangedValueIsNotReapplied(t *testing.T) {
	s, changed := Update(NewState(3), FilterChanged{Column: 1, Value: "ath"})
	require.True(t, changed)
	again, changed := Update(s, FilterChanged{Column: 1, Value: "ath"})
	assert.False(t, changed)
	assert.Equal(t, s, again)

	cleared, changed := Update(s, FilterChanged{Column: 1, Value: ""})
	assert.True(t, changed)
	assert.Empty(t, cleared.Filters)
	// The input state is left alone.
	assert.Equal(t, "ath", s.Filter(1))
}

func TestHideAndShowColumnKeepsData(t *testing.T) {
	ds := listings(t)
	s := NewState(ds.Width())
	hidden, changed := Update(s, ColumnHidden{Column: 2})
	require.True(t, changed)
	f := Build(ds, hidden).Frame()
	assert.Equal(t, []string{"city", "contains_dock", "listing_price"}, columnNames(f))
	for _, row := range f.Rows {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, "https://withroam.com/listing/1", ds.Rows[0][2])

	shown, changed := Update(hidden, ColumnShown{Column: 2})
	require.True(t, changed)
	f = Build(ds, shown).Frame()
	assert.Equal(t, []string{"city", "contains_dock", "url", "listing_price"}, columnNames(f))
	assert.Equal(t, "https://withroam.com/listing/1", f.Rows[0][2].Href)

	_, changed = Update(shown, ColumnShown{Column: 2})
	assert.False(t, changed)
	_, changed = Update(shown, ColumnHidden{Column: 9})
	assert.False(t, changed)
}

func TestMoveKeepsFiltersOnLogicalColumns(t *testing.T) {
	ds := listings(t)
	s, _ := Apply(NewState(ds.Width()),
		FilterChanged{Column: 1, Value: "true"},
		ColumnMoved{From: 3, To: 0},
		ColumnHidden{Column: 2},
	)
	assert.Equal(t, []int{3, 0, 1, 2}, s.Order)
	assert.Equal(t, "true", s.Filter(1))
	assert.Equal(t, 2, s.DisplayPosition(1))

	f := Build(ds, s).Frame()
	assert.Equal(t, []string{"listing_price", "city", "contains_dock"}, columnNames(f))
	require.Len(t, f.Rows, 2)
	assert.Equal(t, "Athens", f.Rows[0][1].Text)
	assert.Equal(t, "Lakemont", f.Rows[1][1].Text)
}

func TestWithOrderRejectsNonPermutations(t *testing.T) {
	s := NewState(3)
	_, ok := WithOrder(s, []int{0, 0, 1})
	assert.False(t, ok)
	_, ok = WithOrder(s, []int{0, 1})
	assert.False(t, ok)
	n, ok := WithOrder(s, []int{2, 0, 1})
	assert.True(t, ok)
	assert.Equal(t, []int{2, 0, 1}, n.Order)
	assert.Equal(t, []int{0, 1, 2}, s.Order)
}

func TestSortClear(t *testing.T) {
	s, _ := Update(NewState(2), SortChanged{Column: 1, Direction: Descending})
	s, changed := Update(s, SortChanged{Column: -1})
	assert.True(t, changed)
	assert.Equal(t, -1, s.SortCol)
	_, changed = Update(s, SortChanged{Column: -1})
	assert.False(t, changed)
}

func TestHeaderOnlyRendersEmptyFrame(t *testing.T) {
	ds, err := dataset.Parse("city,contains_dock\n", dataset.DefaultOptions())
	require.NoError(t, err)
	f := Build(ds, DefaultState(ds, dataset.DockSortColumn)).Frame()
	assert.Len(t, f.Columns, 2)
	assert.Empty(t, f.Rows)
	assert.Equal(t, 0, f.Total)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Ascending, ParseDirection("ASC"))
	assert.Equal(t, Descending, ParseDirection("desc"))
	assert.Equal(t, Unsorted, ParseDirection(""))
	assert.Equal(t, "desc", Descending.String())
}

func TestMixedColumnSortIsIndependentOfInputOrder(t *testing.T) {
	sorted := func(csv string) []string {
		ds, err := dataset.Parse(csv, dataset.DefaultOptions())
		require.NoError(t, err)
		s, _ := Update(NewState(ds.Width()), SortChanged{Column: 0, Direction: Ascending})
		return firstCells(Build(ds, s).Frame())
	}
	want := []string{"9", "10", "1a", "Call"}
	assert.Equal(t, want, sorted("price\n1a\n10\nCall\n9\n"))
	assert.Equal(t, want, sorted("price\n9\nCall\n1a\n10\n"))

	ds, err := dataset.Parse("price\n1a\n10\n9\n", dataset.DefaultOptions())
	require.NoError(t, err)
	s, _ := Update(NewState(1), SortChanged{Column: 0, Direction: Descending})
	assert.Equal(t, []string{"1a", "10", "9"}, firstCells(Build(ds, s).Frame()))
}

func TestBuildNilDataset(t *testing.T) {
	f := Build(nil, NewState(0)).Frame()
	assert.Empty(t, f.Columns)
	assert.Empty(t, f.Rows)
	assert.Equal(t, 0, f.Total)
}
