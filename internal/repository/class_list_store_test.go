package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/internal/model"
)

type memOptions map[string]string

func (m memOptions) Get(_ context.Context, name string) (string, error) { return m[name], nil }

func (m memOptions) Set(_ context.Context, name, value string) error {
	m[name] = value
	return nil
}

func TestClassListStore(t *testing.T) {
	ctx := context.Background()
	opts := memOptions{}
	store := NewClassListStore(opts)

	classes, err := store.Classes(ctx)
	require.NoError(t, err)
	assert.Empty(t, classes)

	require.NoError(t, store.Set(ctx, "Reduced rate\n\n  Zero rate \n"))
	assert.Equal(t, "Reduced rate\n\n  Zero rate \n", opts[model.TaxClassesOption])

	classes, err = store.Classes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Reduced rate", "Zero rate"}, classes)
}

func TestSplitClasses(t *testing.T) {
	assert.Nil(t, SplitClasses(""))
	assert.Equal(t, []string{"A", "B"}, SplitClasses("A\r\nB"))
}
