package main

import (
	"fmt"

	"github.com/jassmeen122/techmentorai/client"
	"github.com/jassmeen122/techmentorai/core"
	"github.com/spf13/cobra"
)

// filterFlags are the relational filters shared by the read and write commands.
type filterFlags struct {
	eq, gt, gte, lt, lte []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.eq, "eq", nil, "equality filter field=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.gt, "gt", nil, "greater-than filter field=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.gte, "gte", nil, "greater-or-equal filter field=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.lt, "lt", nil, "less-than filter field=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.lte, "lte", nil, "less-or-equal filter field=value (repeatable)")
}

// filters parses the flags in a fixed operator order; within an operator the
// command-line order is kept.
func (f *filterFlags) filters(a *app, table core.Table) ([]filter, error) {
	var filterList []filter
	for _, group := range []struct {
		op   core.Operator
		args []string
	}{
		{core.OpEq, f.eq}, {core.OpGt, f.gt}, {core.OpGte, f.gte}, {core.OpLt, f.lt}, {core.OpLte, f.lte},
	} {
		for _, arg := range group.args {
			parsed, err := a.parseFilter(table, group.op, arg)
			if err != nil {
				return nil, err
			}
			filterList = append(filterList, parsed)
		}
	}
	return filterList, nil
}

// readFlags extend filterFlags with the options only reads accept.
type readFlags struct {
	filterFlags
	in    []string
	order string
	desc  bool
	limit int
}

func (f *readFlags) register(cmd *cobra.Command) {
	f.filterFlags.register(cmd)
	cmd.Flags().StringArrayVar(&f.in, "in", nil, "membership filter field=v1,v2 (repeatable)")
	cmd.Flags().StringVar(&f.order, "order", "", "sort column")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of rows (positive)")
}

// build turns the flags into a read builder on table.
func (f *readFlags) build(cmd *cobra.Command, a *app, table core.Table) (*client.Select, error) {
	filterList, err := f.filters(a, table)
	if err != nil {
		return nil, err
	}
	s := applyFilters(a.client.From(table).Select("*"), filterList)
	for _, arg := range f.in {
		field, values, err := a.parseIn(table, arg)
		if err != nil {
			return nil, err
		}
		s = s.In(field, values...)
	}
	if f.order != "" {
		s = s.Order(f.order, client.Order{Ascending: !f.desc})
	}
	if cmd.Flags().Changed("limit") {
		s = s.Limit(f.limit)
	}
	return s, nil
}

func newSelectCmd(a *app) *cobra.Command {
	var flags readFlags
	cmd := &cobra.Command{
		Use:     "select <table>",
		Short:   "Print the rows matching the filters",
		Example: `  techmentorai select badges --gte points=10 --order points --desc --limit 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.build(cmd, a, core.Table(args[0]))
			if err != nil {
				return err
			}
			res := s.Execute(cmd.Context())
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
	flags.register(cmd)
	return cmd
}

func newSingleCmd(a *app) *cobra.Command {
	var flags readFlags
	cmd := &cobra.Command{
		Use:     "single <table>",
		Short:   "Print the only row matching the filters",
		Example: `  techmentorai single profiles --eq id=6f1c...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.build(cmd, a, core.Table(args[0]))
			if err != nil {
				return err
			}
			res := s.Single(cmd.Context())
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
	flags.register(cmd)
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	var flags readFlags
	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Print the number of rows matching the filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.build(cmd, a, core.Table(args[0]))
			if err != nil {
				return err
			}
			res := s.Count(cmd.Context())
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
	flags.register(cmd)
	return cmd
}

func newInsertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "insert <table> <json>",
		Short:   "Insert one row and print it as stored",
		Example: `  techmentorai insert badges '{"name":"A","points":5}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := core.Table(args[0])
			doc, err := a.parseDocument(table, args[1])
			if err != nil {
				return err
			}
			res := a.client.From(table).Insert(cmd.Context(), doc)
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:     "update <table> <json>",
		Short:   "Merge a patch into the first row matching the filters",
		Example: `  techmentorai update badges '{"points":10}' --eq id=6f1c...`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := core.Table(args[0])
			patch, err := a.parseDocument(table, args[1])
			if err != nil {
				return err
			}
			filterList, err := flags.filters(a, table)
			if err != nil {
				return err
			}
			res := applyFilters(a.client.From(table).Update(patch), filterList).Execute(cmd.Context())
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:     "delete <table>",
		Short:   "Delete the first row matching the filters",
		Example: `  techmentorai delete badges --eq id=6f1c...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := core.Table(args[0])
			filterList, err := flags.filters(a, table)
			if err != nil {
				return err
			}
			res := applyFilters(a.client.From(table).Delete(), filterList).Execute(cmd.Context())
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
	flags.register(cmd)
	return cmd
}

func newInvokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "invoke <function> [json body]",
		Short:   "Invoke a remote function",
		Example: `  techmentorai invoke execute-code '{"code":"print(1)","language":"python"}'`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options client.InvokeOptions
			if len(args) == 2 {
				body, err := decodeJSON(args[1])
				if err != nil {
					return err
				}
				options.Body = body
			}
			res := a.client.Functions.Invoke(cmd.Context(), args[0], options)
			if err := a.print(res); err != nil {
				return err
			}
			return failed(res.Error)
		},
	}
}

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.client.Auth.GetSession(cmd.Context()))
		},
	}
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the known tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, table := range a.registry.Tables() {
				schema, err := a.registry.Lookup(table)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(a.out, "%s\t%d columns\n", table, len(schema.Fields)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
