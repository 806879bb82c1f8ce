package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL "Duplicate column name", raised when two requests race to add the
// same column. The loser treats it as success.
const mysqlErrDuplicateColumn = 1060

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DynamicTableService maintains the per-service annexure tables and the
// cmt_applications main-record table. Submitted field sets drive the schema:
// the table is created on first use and a LONGTEXT column is added for every
// field name not seen before. Columns are only ever added, never removed.
type DynamicTableService struct {
	db *gorm.DB
}

func NewDynamicTableService(db *gorm.DB) *DynamicTableService {
	return &DynamicTableService{db: db}
}

// EnsureTable creates tableName with the fixed annexure base schema if it
// does not exist yet. Idempotent.
func (s *DynamicTableService) EnsureTable(tableName string) error {
	if err := validIdentifier(tableName); err != nil {
		return err
	}

	var count int64
	err := s.db.Raw(
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		tableName,
	).Scan(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check table %s: %w", tableName, err)
	}
	if count > 0 {
		return nil
	}

	createSQL := fmt.Sprintf("CREATE TABLE `%s` ("+
		"`id` int NOT NULL AUTO_INCREMENT, "+
		"`cmt_id` int DEFAULT NULL, "+
		"`client_application_id` int NOT NULL, "+
		"`branch_id` int DEFAULT NULL, "+
		"`customer_id` int DEFAULT NULL, "+
		"`status` varchar(100) DEFAULT NULL, "+
		"`team_management_docs` longtext, "+
		"`created_at` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP, "+
		"`updated_at` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP, "+
		"PRIMARY KEY (`id`), "+
		"CONSTRAINT `fk_%s_client_application` FOREIGN KEY (`client_application_id`) REFERENCES `client_applications` (`id`) ON DELETE CASCADE, "+
		"CONSTRAINT `fk_%s_customer` FOREIGN KEY (`customer_id`) REFERENCES `customers` (`customer_id`) ON DELETE CASCADE, "+
		"CONSTRAINT `fk_%s_cmt` FOREIGN KEY (`cmt_id`) REFERENCES `cmt_applications` (`id`) ON DELETE CASCADE"+
		")", tableName, tableName, tableName, tableName)

	if err := s.db.Exec(createSQL).Error; err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return nil
}

// EnsureColumns adds a LONGTEXT column for every field name the table does
// not have yet. A concurrent caller adding the same column is not an error.
func (s *DynamicTableService) EnsureColumns(tableName string, fieldNames []string) error {
	if err := validIdentifier(tableName); err != nil {
		return err
	}

	existing, err := s.columnSet(tableName)
	if err != nil {
		return err
	}

	missing := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		if err := validIdentifier(name); err != nil {
			return err
		}
		if _, ok := existing[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	for _, name := range missing {
		alterSQL := fmt.Sprintf("ALTER TABLE `%s` ADD COLUMN `%s` LONGTEXT", tableName, name)
		if err := s.db.Exec(alterSQL).Error; err != nil {
			if isDuplicateColumnErr(err) {
				continue
			}
			return fmt.Errorf("failed to add column %s.%s: %w", tableName, name, err)
		}
	}
	return nil
}

// Upsert writes fields into the row keyed by keyColumn = keyValue, creating
// the table and any missing columns first. When no row exists yet the insert
// also carries insertOnlyFields (branch_id, customer_id, cmt_id: set once at
// creation, never on update). Returns the row id.
//
// Empty-string and nil values are normalized to SQL NULL before writing.
// The check-then-act sequence is not serializable; concurrent upserts for the
// same key are last-writer-wins.
func (s *DynamicTableService) Upsert(tableName, keyColumn string, keyValue interface{}, fields map[string]interface{}, insertOnlyFields map[string]interface{}) (int64, error) {
	if err := s.EnsureTable(tableName); err != nil {
		return 0, err
	}
	return s.UpsertRecord(tableName, keyColumn, keyValue, fields, insertOnlyFields)
}

// UpsertRecord is Upsert without the table-existence step, for tables with a
// migrated base schema (cmt_applications) that still grow columns on demand.
func (s *DynamicTableService) UpsertRecord(tableName, keyColumn string, keyValue interface{}, fields map[string]interface{}, insertOnlyFields map[string]interface{}) (int64, error) {
	if err := validIdentifier(tableName); err != nil {
		return 0, err
	}
	if err := validIdentifier(keyColumn); err != nil {
		return 0, err
	}

	names := make([]string, 0, len(fields)+len(insertOnlyFields))
	for name := range fields {
		names = append(names, name)
	}
	for name := range insertOnlyFields {
		names = append(names, name)
	}
	if err := s.EnsureColumns(tableName, names); err != nil {
		return 0, err
	}

	var existingID int64
	row := s.db.Raw(
		fmt.Sprintf("SELECT `id` FROM `%s` WHERE `%s` = ? LIMIT 1", tableName, keyColumn),
		keyValue,
	).Scan(&existingID)
	if row.Error != nil {
		return 0, fmt.Errorf("failed to check existing row in %s: %w", tableName, row.Error)
	}

	if row.RowsAffected > 0 {
		if len(fields) > 0 {
			setColumns, args := columnAssignments(fields)
			args = append(args, keyValue)
			updateSQL := fmt.Sprintf("UPDATE `%s` SET %s WHERE `%s` = ?", tableName, setColumns, keyColumn)
			if err := s.db.Exec(updateSQL, args...).Error; err != nil {
				return 0, fmt.Errorf("failed to update %s: %w", tableName, err)
			}
		}
		return existingID, nil
	}

	insert := make(map[string]interface{}, len(fields)+len(insertOnlyFields)+1)
	for name, value := range fields {
		insert[name] = value
	}
	for name, value := range insertOnlyFields {
		insert[name] = value
	}
	insert[keyColumn] = keyValue

	columns, placeholders, args := insertClauses(insert)
	insertSQL := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)", tableName, columns, placeholders)
	if err := s.db.Exec(insertSQL, args...).Error; err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}

	var newID int64
	err := s.db.Raw(
		fmt.Sprintf("SELECT `id` FROM `%s` WHERE `%s` = ? ORDER BY `id` DESC LIMIT 1", tableName, keyColumn),
		keyValue,
	).Scan(&newID).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read back row id from %s: %w", tableName, err)
	}
	return newID, nil
}

func (s *DynamicTableService) columnSet(tableName string) (map[string]struct{}, error) {
	type columnRow struct {
		Field string `gorm:"column:Field"`
	}
	var rows []columnRow
	if err := s.db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", tableName, err)
	}
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[strings.ToLower(r.Field)] = struct{}{}
	}
	return set, nil
}

// columnAssignments renders "`a` = ?, `b` = ?" in sorted column order with
// the matching normalized argument list.
func columnAssignments(fields map[string]interface{}) (string, []interface{}) {
	names := sortedKeys(fields)
	parts := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("`%s` = ?", name))
		args = append(args, normalizeSQLValue(fields[name]))
	}
	return strings.Join(parts, ", "), args
}

func insertClauses(fields map[string]interface{}) (string, string, []interface{}) {
	names := sortedKeys(fields)
	columns := make([]string, 0, len(names))
	placeholders := make([]string, 0, len(names))
	args := make([]interface{}, 0, len(names))
	for _, name := range names {
		columns = append(columns, fmt.Sprintf("`%s`", name))
		placeholders = append(placeholders, "?")
		args = append(args, normalizeSQLValue(fields[name]))
	}
	return strings.Join(columns, ", "), strings.Join(placeholders, ", "), args
}

func sortedKeys(fields map[string]interface{}) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalizeSQLValue maps empty strings and nils to SQL NULL. Applied to the
// main cmt record and the annexure upserts alike.
func normalizeSQLValue(v interface{}) interface{} {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return value
	default:
		return v
	}
}

func isDuplicateColumnErr(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateColumn
}

func validIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}
