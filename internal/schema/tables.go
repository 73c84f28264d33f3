package schema

import "slices"

// SQL column types used by the tables.
const (
	TypeInteger = "integer"
	TypeText    = "text"
	TypeDate    = "date"
)

// Column describes one table column.
type Column struct {
	Name     string
	Type     string
	Nullable bool

	// PrimaryKey marks the single-column primary key.
	PrimaryKey bool

	// Identity makes the database generate the value when none is supplied
	// (GENERATED BY DEFAULT AS IDENTITY).
	Identity bool
}

// ForeignKey is a single-column reference to another table.
type ForeignKey struct {
	Name             string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
	OnDelete         string
}

// Check restricts a column to a fixed set of values.
type Check struct {
	Name    string
	Column  string
	Allowed []string
}

// Table is the metadata CreateTableSQL renders.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	Checks      []Check
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	i := slices.IndexFunc(t.Columns, func(c Column) bool { return c.Name == name })
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// Unmapped returns the names in columns that t does not declare, in order.
func (t Table) Unmapped(columns []string) []string {
	var out []string
	for _, c := range columns {
		if _, ok := t.Column(c); !ok {
			out = append(out, c)
		}
	}
	return out
}

const (
	UsersTable        = "users"
	RecipesTable      = "recipes"
	InteractionsTable = "interactions"
)

// Users is the users table.
var Users = Table{
	Name: UsersTable,
	Columns: []Column{
		{Name: "user_id", Type: TypeInteger, PrimaryKey: true},
		{Name: "first_name", Type: TypeText},
		{Name: "last_name", Type: TypeText},
		{Name: "sex", Type: TypeText, Nullable: true},
		{Name: "email", Type: TypeText, Nullable: true},
		{Name: "job_title", Type: TypeText, Nullable: true},
		{Name: "date_of_birth", Type: TypeDate, Nullable: true},
		{Name: "age", Type: TypeInteger},
		{Name: "last_modified", Type: TypeDate},
	},
}

// Recipes is the recipes table.
var Recipes = Table{
	Name: RecipesTable,
	Columns: []Column{
		{Name: "id", Type: TypeInteger, PrimaryKey: true},
		{Name: "name", Type: TypeText},
		{Name: "minutes", Type: TypeInteger, Nullable: true},
		{Name: "submitted", Type: TypeDate, Nullable: true},
		{Name: "tags", Type: TypeText, Nullable: true},
		{Name: "n_steps", Type: TypeInteger, Nullable: true},
		{Name: "ingredients", Type: TypeText, Nullable: true},
		{Name: "n_ingredients", Type: TypeInteger, Nullable: true},
		{Name: "complexity", Type: TypeText},
	},
	Checks: []Check{
		{Name: "recipes_complexity_check", Column: "complexity", Allowed: []string{"Easy", "Moderate", "Hard"}},
	},
}

// Interactions is the interactions table. Its id is generated when the input
// does not carry one.
var Interactions = Table{
	Name: InteractionsTable,
	Columns: []Column{
		{Name: "id", Type: TypeInteger, PrimaryKey: true, Identity: true},
		{Name: "user_id", Type: TypeInteger},
		{Name: "recipe_id", Type: TypeInteger},
		{Name: "date", Type: TypeDate, Nullable: true},
		{Name: "rating", Type: TypeInteger, Nullable: true},
		{Name: "review", Type: TypeText, Nullable: true},
		{Name: "rating_level", Type: TypeText},
	},
	ForeignKeys: []ForeignKey{
		{Name: "interactions_user_id_fkey", Column: "user_id", ReferencedTable: UsersTable, ReferencedColumn: "user_id", OnDelete: "CASCADE"},
		{Name: "interactions_recipe_id_fkey", Column: "recipe_id", ReferencedTable: RecipesTable, ReferencedColumn: "id", OnDelete: "CASCADE"},
	},
	Checks: []Check{
		{Name: "interactions_rating_level_check", Column: "rating_level", Allowed: []string{"Low", "Medium", "High"}},
	},
}

// All returns every table, parents before children.
func All() []Table {
	return []Table{Users, Recipes, Interactions}
}
