package schema

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// CreateTableSQL renders t as a CREATE TABLE IF NOT EXISTS statement.
func CreateTableSQL(t Table) string {
	var parts []string

	for _, col := range t.Columns {
		parts = append(parts, "    "+columnDefinition(col))
	}

	for _, fk := range t.ForeignKeys {
		def := fmt.Sprintf("    CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			quote(fk.Name), quote(fk.Column), quote(fk.ReferencedTable), quote(fk.ReferencedColumn))
		if fk.OnDelete != "" {
			def += " ON DELETE " + fk.OnDelete
		}
		parts = append(parts, def)
	}

	for _, chk := range t.Checks {
		allowed := make([]string, len(chk.Allowed))
		for i, v := range chk.Allowed {
			allowed[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s CHECK (%s IN (%s))",
			quote(chk.Name), quote(chk.Column), strings.Join(allowed, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", quote(t.Name), strings.Join(parts, ",\n"))
}

func columnDefinition(col Column) string {
	parts := []string{quote(col.Name), col.Type}

	// identity columns are implicitly NOT NULL
	if col.Identity {
		parts = append(parts, "GENERATED BY DEFAULT AS IDENTITY")
	} else if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}

	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}

	return strings.Join(parts, " ")
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
