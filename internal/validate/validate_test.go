package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todoflow-labs/list-service/internal/validate"
)

var listConstraints = validate.Constraints{
	{Field: "listId", Presence: true, Type: validate.String},
	{Field: "name", Presence: true, Type: validate.String},
}

func TestCheckPasses(t *testing.T) {
	err := listConstraints.Check(map[string]any{"listId": "abc", "name": "Groceries"})
	assert.Nil(t, err)
}

func TestCheckMissingField(t *testing.T) {
	err := listConstraints.Check(map[string]any{"name": "Groceries"})
	assert.NotNil(t, err)

	fields := err.Data.(map[string]any)["validation"].(map[string][]string)
	assert.Equal(t, []string{"List Id can't be blank"}, fields["listId"])
	assert.NotContains(t, fields, "name")
}

func TestCheckWrongType(t *testing.T) {
	err := listConstraints.Check(map[string]any{"listId": "abc", "name": float64(12344567)})
	assert.NotNil(t, err)
	assert.Equal(t, "required fields are missing", err.Message)

	fields := err.Data.(map[string]any)["validation"].(map[string][]string)
	assert.Equal(t, []string{"Name must be of type string"}, fields["name"])
}

func TestCheckBlankString(t *testing.T) {
	err := listConstraints.Check(map[string]any{"listId": "abc", "name": "   "})
	assert.NotNil(t, err)

	fields := err.Data.(map[string]any)["validation"].(map[string][]string)
	assert.Equal(t, []string{"Name can't be blank"}, fields["name"])
}

func TestCheckCollectsAllFields(t *testing.T) {
	err := listConstraints.Check(map[string]any{})
	assert.NotNil(t, err)

	fields := err.Data.(map[string]any)["validation"].(map[string][]string)
	assert.Len(t, fields, 2)
	assert.Equal(t, []string{"List Id can't be blank"}, fields["listId"])
	assert.Equal(t, []string{"Name can't be blank"}, fields["name"])
}

func TestOptionalFieldTypeOnly(t *testing.T) {
	constraints := validate.Constraints{
		{Field: "completed", Type: validate.Boolean},
	}

	assert.Nil(t, constraints.Check(map[string]any{}))
	assert.Nil(t, constraints.Check(map[string]any{"completed": true}))

	err := constraints.Check(map[string]any{"completed": "yes"})
	assert.NotNil(t, err)
	fields := err.Data.(map[string]any)["validation"].(map[string][]string)
	assert.Equal(t, []string{"Completed must be of type boolean"}, fields["completed"])
}
