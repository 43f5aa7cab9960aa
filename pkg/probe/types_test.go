package probe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryRoundTrip(t *testing.T) {
	for _, category := range []Category{CategoryLow, CategoryMedium, CategoryHigh, CategoryCritical} {
		parsed, err := ParseCategory(category.String())
		require.NoError(t, err)
		require.Equal(t, category, parsed)
	}
}

func TestParseCategoryIsCaseInsensitive(t *testing.T) {
	parsed, err := ParseCategory("HIGH")
	require.NoError(t, err)
	require.Equal(t, CategoryHigh, parsed)
}

func TestParseCategoryRejectsUnknownValues(t *testing.T) {
	_, err := ParseCategory("catastrophic")
	require.Error(t, err)
}

func TestCategoryJSONEncoding(t *testing.T) {
	raw, err := json.Marshal(CategoryCritical)
	require.NoError(t, err)
	require.Equal(t, `"critical"`, string(raw))

	var category Category
	require.NoError(t, json.Unmarshal([]byte(`"medium"`), &category))
	require.Equal(t, CategoryMedium, category)
}

func TestDedupeAndSort(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, dedupeAndSort([]string{"c", "a", "b", "a", "c"}))
	require.Equal(t, []string{"a"}, dedupeAndSort([]string{"a"}))
	require.Empty(t, dedupeAndSort(nil))
}

func TestHasMountOption(t *testing.T) {
	require.True(t, hasMountOption("ro,noatime", "ro"))
	require.True(t, hasMountOption("ro", "ro"))
	require.False(t, hasMountOption("rw,errors=remount-ro", "ro"))
	require.False(t, hasMountOption("rw,relatime", "ro"))
}
