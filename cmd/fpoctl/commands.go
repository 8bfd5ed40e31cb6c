package main

import (
	"fmt"
	"time"

	"fpoconsole/internal/query"
	"fpoconsole/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRootCmd(e env) *cobra.Command {
	a := &app{env: e}
	root := &cobra.Command{
		Use:           "fpoctl",
		Short:         "Inspect and update a producer organization dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(cmd.Context())
		},
	}
	root.SetOut(e.out)
	root.PersistentFlags().StringVar(&a.saveKey, "save", "", "write the resulting dataset to this blob key")
	root.PersistentFlags().BoolVar(&a.reseed, "reseed", false, "replace durable state with the seed dataset")

	root.AddCommand(
		&cobra.Command{
			Use:   "overview",
			Short: "Print the organization-wide dashboard",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return a.print(a.svc.Overview()) },
		},
		&cobra.Command{
			Use:   "operations",
			Short: "Print the administrator dashboard",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return a.print(a.svc.OperationsView()) },
		},
		&cobra.Command{
			Use:   "cluster NAME",
			Short: "Print the moderator dashboard for one cluster",
			Args:  cobra.ExactArgs(1),
			RunE:  func(_ *cobra.Command, args []string) error { return a.print(a.svc.ClusterView(args[0])) },
		},
		&cobra.Command{
			Use:   "inventory",
			Short: "List inventory items with their stock status",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return a.print(a.svc.Inventory()) },
		},
		&cobra.Command{
			Use:   "export",
			Short: "Print the full dataset in seed format",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return seed.Encode(a.out, a.svc.Snapshot()) },
		},
		newFarmersCmd(a),
		newStaffCmd(a),
		newVisitCmd(a),
		newAttendanceCmd(a),
		newReceiveCmd(a),
	)
	return root
}

func newFarmersCmd(a *app) *cobra.Command {
	var c query.FarmerCriteria
	var sortBy, dir string
	cmd := &cobra.Command{
		Use:   "farmers",
		Short: "Print one page of the farmer directory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.SortBy = query.FarmerSortKey(sortBy)
			c.Direction = query.ParseDirection(dir)
			return a.print(a.svc.Farmers(c))
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "name contains, case-insensitive")
	f.StringVar(&c.Phone, "phone", "", "phone contains")
	f.StringVar(&c.Status, "status", "", "exact status, or All")
	f.StringVar(&c.Crop, "crop", "", "grows this crop, or All")
	f.StringVar(&c.Cluster, "cluster", "", "exact cluster")
	f.StringVar(&sortBy, "sort", "", "name, phone, membership_date or last_visit")
	f.StringVar(&dir, "dir", "asc", "asc or desc")
	f.IntVar(&c.Page, "page", 1, "page number")
	f.IntVar(&c.PageSize, "size", 0, "page size, 0 uses the configured default")
	return cmd
}

func newStaffCmd(a *app) *cobra.Command {
	var c query.StaffCriteria
	var sortBy, dir string
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Print one page of the staff directory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.SortBy = query.StaffSortKey(sortBy)
			c.Direction = query.ParseDirection(dir)
			return a.print(a.svc.StaffDirectory(c))
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.Name, "name", "", "name contains, case-insensitive")
	f.StringVar(&c.Role, "role", "", "exact role, or All")
	f.StringVar(&c.Status, "status", "", "exact status, or All")
	f.StringVar(&c.Cluster, "cluster", "", "exact cluster")
	f.StringVar(&sortBy, "sort", "", "name, role or tasks_completed")
	f.StringVar(&dir, "dir", "asc", "asc or desc")
	f.IntVar(&c.Page, "page", 1, "page number")
	f.IntVar(&c.PageSize, "size", 0, "page size, 0 uses the configured default")
	return cmd
}

func newVisitCmd(a *app) *cobra.Command {
	var at, note string
	cmd := &cobra.Command{
		Use:   "visit FARMER_ID",
		Short: "Record a field visit, optionally with a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseTime(at)
			if err != nil {
				return err
			}
			farmer, res, err := a.svc.RecordFarmerVisit(cmd.Context(), args[0], when)
			if err != nil {
				return err
			}
			if note != "" {
				noted, noteRes, err := a.svc.AddFarmerNote(cmd.Context(), args[0], note)
				if err != nil {
					return err
				}
				farmer = noted
				res.Merge(noteRes)
			}
			return printMutation(a, farmer, res)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "visit time in RFC 3339, defaults to now")
	cmd.Flags().StringVar(&note, "note", "", "note to append to the farmer record")
	return cmd
}

func newAttendanceCmd(a *app) *cobra.Command {
	var date string
	var absent bool
	cmd := &cobra.Command{
		Use:   "attendance STAFF_ID",
		Short: "Mark a staff member present or absent for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseTime(date)
			if err != nil {
				return err
			}
			member, res, err := a.svc.MarkAttendance(cmd.Context(), args[0], when, !absent)
			if err != nil {
				return err
			}
			return printMutation(a, member, res)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as 2006-01-02 or RFC 3339, defaults to today")
	cmd.Flags().BoolVar(&absent, "absent", false, "mark absent instead of present")
	return cmd
}

func newReceiveCmd(a *app) *cobra.Command {
	var qty, cost string
	cmd := &cobra.Command{
		Use:   "receive ITEM_ID",
		Short: "Receive stock into an inventory item at a unit cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := decimal.NewFromString(qty)
			if err != nil {
				return fmt.Errorf("--qty: %w", err)
			}
			unitCost, err := decimal.NewFromString(cost)
			if err != nil {
				return fmt.Errorf("--cost: %w", err)
			}
			item, res, err := a.svc.ReceiveInventory(cmd.Context(), args[0], quantity, unitCost)
			if err != nil {
				return err
			}
			return printMutation(a, item, res)
		},
	}
	cmd.Flags().StringVar(&qty, "qty", "", "quantity received")
	cmd.Flags().StringVar(&cost, "cost", "0", "unit cost of the received stock")
	_ = cmd.MarkFlagRequired("qty")
	return cmd
}

// parseTime accepts RFC 3339 or a bare date. An empty value yields the zero
// time, which the service replaces with its clock.
func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or 2006-01-02", v)
	}
	return t, nil
}
