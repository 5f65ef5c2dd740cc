package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Dump maps table names to their rows.
type Dump map[string][]map[string]interface{}

// ExportDB writes all data from the database into a single file. Files
// ending in .yaml or .yml are written as YAML, anything else as TOML.
func (s *Storage) ExportDB(outputPath string) error {
	tablesQuery := `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%';`
	rows, err := s.DB.Query(tablesQuery)
	if err != nil {
		return fmt.Errorf("querying sqlite_master: %w", err)
	}

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			rows.Close()
			return fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tables: %w", err)
	}

	dump := make(Dump)
	for _, tableName := range tables {
		tableData, err := s.dumpTable(tableName)
		if err != nil {
			return err
		}
		dump[tableName] = tableData
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	return WriteDump(outputPath, dump)
}

func (s *Storage) dumpTable(tableName string) ([]map[string]interface{}, error) {
	tableRows, err := s.DB.Query(fmt.Sprintf("SELECT * FROM %s;", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", tableName, err)
	}
	defer tableRows.Close()

	cols, err := tableRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s: %w", tableName, err)
	}

	var tableData []map[string]interface{}
	for tableRows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := tableRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row in table %s: %w", tableName, err)
		}
		tableData = append(tableData, rowMap(cols, values))
	}
	return tableData, tableRows.Err()
}

// rowMap pairs columns with values, turning byte slices into strings and
// dropping NULLs, which TOML cannot represent.
func rowMap(cols []string, values []interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		switch v := values[i].(type) {
		case nil:
		case []byte:
			row[col] = string(v)
		default:
			row[col] = v
		}
	}
	return row
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func WriteDump(path string, dump Dump) error {
	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(dump)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		data = out
	} else {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(dump); err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		data = []byte(sb.String())
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

func ReadDump(path string) (Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var dump Dump
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &dump); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	} else if _, err := toml.Decode(string(data), &dump); err != nil {
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}
	return dump, nil
}

// ImportDB rebuilds the database from a dump file by deleting current rows
// from every dumped table and inserting the rows from the dump.
func (s *Storage) ImportDB(filePath string) error {
	dump, err := ReadDump(filePath)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for table, rows := range dump {
		if table != "workouts" && table != "presets" {
			return fmt.Errorf("unknown table %q in dump", table)
		}

		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}

		for _, row := range rows {
			var columns []string
			var placeholders []string
			var values []interface{}
			for col, val := range row {
				columns = append(columns, col)
				placeholders = append(placeholders, "?")
				values = append(values, val)
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.Exec(query, values...); err != nil {
				return fmt.Errorf("inserting into table %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
