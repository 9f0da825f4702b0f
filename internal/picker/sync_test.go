package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectsync/internal/domain"
	"selectsync/internal/observe"
	"selectsync/internal/selection"
	"selectsync/internal/widget"
)

type fruit struct {
	ID   int
	Name string
}

var fruitFields = domain.Fields[fruit]{
	Value: func(f fruit) domain.ID { return domain.NumberID(float64(f.ID)) },
	Display: func(f fruit) string {
		return f.Name
	},
}

func attachFruits(t *testing.T, multi bool) (*selection.Synchronizer[fruit], *Picker, *observe.List[fruit]) {
	t.Helper()
	s := selection.New(selection.Settings{Multiselect: multi, ValueField: "id", DisplayField: "name"}, fruitFields)
	fruits := observe.NewList(fruit{1, "Apple"}, fruit{2, "Banana"}, fruit{3, "Cherry"})
	s.SetCandidates(fruits)
	p := New("fruit")
	require.NoError(t, s.Attach(p))
	return s, p, fruits
}

func TestSyncSingleSelectThroughKeys(t *testing.T) {
	s, p, _ := attachFruits(t, false)

	p.Update(keyMsg("down"))
	p.Update(keyMsg("enter"))

	assert.Equal(t, domain.NumberID(2), s.SelectedValue())
	obj, ok := s.SelectedObject()
	require.True(t, ok)
	assert.Equal(t, "Banana", obj.Name)
	assert.Empty(t, p.Status())

	require.NoError(t, s.SetSelectedValue(domain.NumberID(3)))
	assert.Equal(t, []string{"3"}, p.Items())

	p.Update(keyMsg("backspace"))
	assert.True(t, s.SelectedValue().IsNull())
}

func TestSyncMultiSelectThroughKeys(t *testing.T) {
	s, p, _ := attachFruits(t, true)

	p.Update(keyMsg("enter"))
	p.Update(keyMsg("down"))
	p.Update(keyMsg("down"))
	p.Update(keyMsg("enter"))

	assert.Equal(t, []domain.ID{domain.NumberID(1), domain.NumberID(3)}, s.SelectedValues().Items())
	assert.Equal(t, []string{"Apple", "Cherry"}, names(s.SelectedObjects().Items()))

	require.NoError(t, s.SelectedObjects().RemoveAt(0))
	assert.Equal(t, []string{"3"}, p.Items())

	p.Update(keyMsg("ctrl+u"))
	assert.Empty(t, p.Items())
	assert.Zero(t, s.SelectedValues().Len())
	assert.Zero(t, s.SelectedObjects().Len())
}

func TestSyncCandidateRemovalDropsOption(t *testing.T) {
	s, p, fruits := attachFruits(t, true)
	require.NoError(t, s.SetSelectedValues(observe.NewList(domain.NumberID(1))))

	require.NoError(t, fruits.Push(fruit{4, "Date"}))
	assert.Len(t, p.visible, 4)

	require.NoError(t, fruits.RemoveAt(1))
	assert.Len(t, p.visible, 3)
	assert.Equal(t, []string{"1"}, p.Items())
}

func TestSyncDetachDestroysPicker(t *testing.T) {
	s, p, _ := attachFruits(t, false)

	s.Detach()

	assert.ErrorIs(t, p.Pick("1"), widget.ErrDestroyed)
	assert.True(t, s.SelectedValue().IsNull())
}

func names(fs []fruit) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}
