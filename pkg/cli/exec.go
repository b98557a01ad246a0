package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TechXTT/iotorm/internal/core"
	"github.com/TechXTT/iotorm/pkg/request"
)

// parseScalar reads integers, floats and booleans, falling back to the string.
func parseScalar(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func parseRow(s string) []any {
	parts := strings.Split(s, ",")
	row := make([]any, len(parts))
	for i, p := range parts {
		row[i] = parseScalar(strings.TrimSpace(p))
	}
	return row
}

func newExecCmd(a *app) *cobra.Command {
	var (
		method  string
		table   string
		idKey   string
		id      string
		idIn    []string
		rows    []string
		content map[string]string
	)

	cmd := &cobra.Command{
		Use:   "exec STATEMENT",
		Short: "Run an update statement and print the result envelope",
		Example: `  iotorm exec --method POST --table sensor1 --row 1,20.5 \
    "INSERT INTO root.db.sensor1(timestamp, temp) VALUES (1, 20.5)"
  iotorm exec --method DELETE --id 1700000000000 "DELETE FROM root.db.sensor1.temp WHERE time = 1700000000000"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := request.ParseMethod(method)
			if err != nil {
				return err
			}
			if m.IsQuery() {
				return fmt.Errorf("method %s is a query; use the query command", m)
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			cfg := a.newConfig(m, table)
			cfg.IDKey = idKey
			if cmd.Flags().Changed("id") {
				cfg.ID = parseScalar(id)
			}
			for _, v := range idIn {
				cfg.IDIn = append(cfg.IDIn, parseScalar(v))
			}
			for _, r := range rows {
				cfg.Values = append(cfg.Values, parseRow(r))
			}
			if len(content) > 0 {
				cfg.Content = make(map[string]any, len(content))
				for k, v := range content {
					cfg.Content[k] = parseScalar(v)
				}
			}

			res, err := a.db.Execute(cmd.Context(), cfg, args[0], true)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&method, "method", "POST", "request method: POST, PUT or DELETE")
	f.StringVar(&table, "table", "", "target table (device) name")
	f.StringVar(&idKey, "id-key", request.DefaultIDKey, "name of the id key")
	f.StringVar(&id, "id", "", "single targeted id")
	f.StringSliceVar(&idIn, "id-in", nil, "list of targeted ids")
	f.StringArrayVar(&rows, "row", nil, "comma separated value row (repeatable)")
	f.StringToStringVar(&content, "set", nil, "content entries for PUT, key=value")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		table  string
		all    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "query STATEMENT",
		Short: "Run a query statement and print the result document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			cfg := a.newConfig(request.GETS, table)
			if all {
				docs, err := a.db.Query(cmd.Context(), cfg, args[0], !strict)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), docs)
			}
			doc, err := a.db.Execute(cmd.Context(), cfg, args[0], !strict)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}

	f := cmd.Flags()
	f.StringVar(&table, "table", "", "queried table (device) name, stripped from column names")
	f.BoolVar(&all, "all", false, "print every row as its own document")
	f.BoolVar(&strict, "strict", false, "normalize values to int64, float64, bool and string")
	return cmd
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		columns  []string
		where    []string
		from, to int64
		order    string
		limit    int
		offset   int
		byDevice bool
		count    bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "select PATH",
		Short: "Build a select statement for PATH, run it and print the rows",
		Example: `  iotorm select root.db --columns temp --from 0 --to 1700000000000 --limit 10
  iotorm select root.db.sensor1 --count --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb := core.NewSelectBuilder(true).From(args[0]).Select(columns...)
			for _, w := range where {
				sb.Where(w)
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				sb.Between(from, to)
			}
			sb.OrderBy(order).Limit(limit).Offset(offset)
			if byDevice {
				sb.AlignByDevice()
			}
			stmt := sb.Build()
			if count {
				stmt = sb.BuildCount()
			}
			if dryRun {
				cmd.Println(stmt)
				return nil
			}

			if err := a.setup(cmd); err != nil {
				return err
			}
			cfg := a.newConfig(request.GETS, tableOf(args[0], a.cfg.Schema))
			docs, err := a.db.Query(cmd.Context(), cfg, stmt, true)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), docs)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&columns, "columns", nil, "measurements to select (default all)")
	f.StringArrayVar(&where, "where", nil, "condition, joined with AND (repeatable)")
	f.Int64Var(&from, "from", 0, "range start timestamp")
	f.Int64Var(&to, "to", 0, "range end timestamp")
	f.StringVar(&order, "order", "", "ORDER BY clause")
	f.IntVar(&limit, "limit", 0, "LIMIT")
	f.IntVar(&offset, "offset", 0, "OFFSET")
	f.BoolVar(&byDevice, "align-by-device", false, "ALIGN BY DEVICE")
	f.BoolVar(&count, "count", false, "count points instead of selecting them")
	f.BoolVar(&dryRun, "dry-run", false, "print the statement without running it")
	return cmd
}

// tableOf returns the part of path under schema, which is what column names
// are prefixed with besides the schema.
func tableOf(path, schema string) string {
	if rest, ok := strings.CutPrefix(path, schema+"."); ok {
		return rest
	}
	return path
}
