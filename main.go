package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"subtrack/internal/auth"
	"subtrack/internal/core"
	"subtrack/internal/store"

	"github.com/GiGurra/boa/pkg/boa"
)

func main() {
	boa.NewCmdT[struct{}]("subtrack").
		WithShort("Track rental subscriptions, expiry dates and monthly revenue").
		WithLong("Manages customer rental records (name, device, registration date, months rented), "+
			"derives expiry dates and status, imports/exports customer lists and reports monthly revenue. "+
			"Data lives in a local SQLite database scoped to your account; --guest runs any command "+
			"against an ephemeral in-memory store instead.").
		WithSubCmds(subCmds()...).
		Run()
}

// subCmds is the full command tree, in help order.
func subCmds() []boa.CmdIfc {
	return []boa.CmdIfc{
		listCmd(),
		addCmd(),
		updateCmd(),
		deleteCmd(),
		importCmd(),
		exportCmd(),
		reportCmd(),
		registerCmd(),
		loginCmd(),
		logoutCmd(),
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// env is everything a data command needs: an open store, the owner scope
// for queries, and the loaded config.
type env struct {
	store store.Store
	owner string
	cfg   *core.Config
}

// openEnv wires up either the guest in-memory store (seeded with sample
// records) or the SQLite store scoped to the logged-in account.
func openEnv(ctx context.Context, guest bool) (*env, error) {
	cfgDir := core.DefaultConfigDir()
	cfg, err := core.LoadConfig(filepath.Join(cfgDir, "config.yaml"))
	if err != nil {
		return nil, err
	}

	if guest {
		st := store.NewMemory()
		for _, rec := range core.SampleRecords(time.Now()) {
			sample := rec
			if err := st.AddCustomer(ctx, &sample); err != nil {
				return nil, err
			}
		}
		return &env{store: st, owner: "", cfg: cfg}, nil
	}

	owner, err := auth.NewSessions(cfgDir).Current()
	if errors.Is(err, auth.ErrNotLoggedIn) {
		return nil, fmt.Errorf("not logged in (run 'subtrack login', or use --guest)")
	}
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &env{store: st, owner: owner, cfg: cfg}, nil
}

type listParams struct {
	Search string `descr:"Filter by customer name (case-insensitive)" default:""`
	Guest  bool   `descr:"Use the ephemeral guest store"`
}

func listCmd() boa.CmdIfc {
	return boa.NewCmdT[listParams]("list").
		WithShort("Show all customers with derived expiry dates and status").
		WithRunFunc(func(p *listParams) {
			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			records, err := e.store.ListCustomers(ctx, e.owner)
			if err != nil {
				fail("%v", err)
			}
			records = core.FilterByName(records, p.Search)
			if len(records) == 0 {
				fmt.Println("No customers found.")
				return
			}

			rows := core.Project(records, time.Now())
			printListSummary(rows)
			core.RenderTable(os.Stdout, rows)
		})
}

func printListSummary(rows []core.DisplayRow) {
	expired, expiring := 0, 0
	for _, row := range rows {
		switch row.Status.Kind {
		case core.StatusExpired:
			expired++
		case core.StatusExpiringSoon:
			expiring++
		}
	}
	fmt.Printf("%d customers (%d expired, %d expiring soon)\n\n", len(rows), expired, expiring)
}

type addParams struct {
	Name   string `descr:"Customer name"`
	Device string `descr:"Device / note" default:""`
	Date   string `descr:"Registration date (DD/MM/YYYY, defaults to today)" default:""`
	Months int    `descr:"Months rented" default:"1"`
	Guest  bool   `descr:"Use the ephemeral guest store"`
}

func addCmd() boa.CmdIfc {
	return boa.NewCmdT[addParams]("add").
		WithShort("Add a customer record").
		WithRunFunc(func(p *addParams) {
			if p.Name == "" {
				fail("customer name is required")
			}
			if p.Date == "" {
				p.Date = time.Now().Format(core.DisplayDateLayout)
			}
			if p.Months < 1 {
				p.Months = 1
			}

			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			rec := core.CustomerRecord{
				Owner:      e.owner,
				Name:       p.Name,
				DeviceInfo: p.Device,
				RegDate:    p.Date,
				Duration:   p.Months,
			}
			if err := e.store.AddCustomer(ctx, &rec); err != nil {
				fail("%v", err)
			}
			fmt.Printf("Added #%d %s\n", rec.ID, rec.Name)
		})
}

type updateParams struct {
	Id     uint   `descr:"Customer id" positional:"true"`
	Name   string `descr:"New customer name" default:""`
	Device string `descr:"New device / note" default:""`
	Date   string `descr:"New registration date" default:""`
	Months int    `descr:"New months rented" default:"0"`
	Guest  bool   `descr:"Use the ephemeral guest store"`
}

func updateCmd() boa.CmdIfc {
	return boa.NewCmdT[updateParams]("update").
		WithShort("Update a customer record (unset flags keep current values)").
		WithRunFunc(func(p *updateParams) {
			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			rec, err := e.store.GetCustomer(ctx, e.owner, p.Id)
			if errors.Is(err, store.ErrNotFound) {
				fail("no customer with id %d", p.Id)
			}
			if err != nil {
				fail("%v", err)
			}

			if p.Name != "" {
				rec.Name = p.Name
			}
			if p.Device != "" {
				rec.DeviceInfo = p.Device
			}
			if p.Date != "" {
				rec.RegDate = p.Date
			}
			if p.Months > 0 {
				rec.Duration = p.Months
			}

			if err := e.store.UpdateCustomer(ctx, rec); err != nil {
				fail("%v", err)
			}
			fmt.Printf("Updated #%d %s\n", rec.ID, rec.Name)
		})
}

type deleteParams struct {
	Id    uint `descr:"Customer id" positional:"true"`
	Guest bool `descr:"Use the ephemeral guest store"`
}

func deleteCmd() boa.CmdIfc {
	return boa.NewCmdT[deleteParams]("rm").
		WithShort("Delete a customer record").
		WithRunFunc(func(p *deleteParams) {
			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			err = e.store.DeleteCustomer(ctx, e.owner, p.Id)
			if errors.Is(err, store.ErrNotFound) {
				fail("no customer with id %d", p.Id)
			}
			if err != nil {
				fail("%v", err)
			}
			fmt.Printf("Deleted #%d\n", p.Id)
		})
}

type importParams struct {
	File   string `descr:"File to import (.csv/.txt/.json/.xlsx), or - for pasted stdin" positional:"true"`
	DryRun bool   `descr:"Preview the normalized rows without saving"`
	Guest  bool   `descr:"Use the ephemeral guest store"`
}

func importCmd() boa.CmdIfc {
	return boa.NewCmdT[importParams]("import").
		WithShort("Import customers from a file or pasted data").
		WithLong("Column headers are matched heuristically (Vietnamese or English) onto "+
			"name / device / date / duration; missing columns fall back to defaults. "+
			"CSV delimiters are auto-detected, JSON must be an array of objects, and "+
			"stdin paste also accepts near-JSON content.").
		WithRunFunc(func(p *importParams) {
			raw, err := readImport(p.File)
			if errors.Is(err, core.ErrNoData) {
				fail("no importable data found (expected CSV, JSON or XLSX shaped input)")
			}
			if err != nil {
				fail("%v", err)
			}

			records := core.Normalize(raw, time.Now())
			if len(records) == 0 {
				fmt.Println("No data found.")
				return
			}

			if p.DryRun {
				fmt.Printf("Preview of %d rows (not saved):\n\n", len(records))
				core.RenderTable(os.Stdout, core.Project(records, time.Now()))
				return
			}

			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			for i := range records {
				records[i].Owner = e.owner
				if err := e.store.AddCustomer(ctx, &records[i]); err != nil {
					fail("%v", err)
				}
			}
			fmt.Printf("Imported %d customers\n", len(records))
		})
}

func readImport(file string) (core.RawTable, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return core.RawTable{}, fmt.Errorf("reading stdin: %w", err)
		}
		return core.ParsePasted(string(data))
	}
	return core.ParseFile(file)
}

type exportParams struct {
	File  string `descr:"Output file (.csv/.json/.txt/.xlsx)" positional:"true"`
	Guest bool   `descr:"Use the ephemeral guest store"`
}

func exportCmd() boa.CmdIfc {
	return boa.NewCmdT[exportParams]("export").
		WithShort("Export all customers to a file").
		WithRunFunc(func(p *exportParams) {
			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			records, err := e.store.ListCustomers(ctx, e.owner)
			if err != nil {
				fail("%v", err)
			}
			if len(records) == 0 {
				fmt.Println("No data to export.")
				return
			}
			if err := core.WriteFile(p.File, records); err != nil {
				fail("%v", err)
			}
			fmt.Printf("Exported %d customers to %s\n", len(records), p.File)
		})
}

type reportParams struct {
	Price int64 `descr:"Price per rented month (defaults to config unit_price)" default:"0"`
	Guest bool  `descr:"Use the ephemeral guest store"`
}

func reportCmd() boa.CmdIfc {
	return boa.NewCmdT[reportParams]("report").
		WithShort("Monthly revenue report grouped by registration month").
		WithRunFunc(func(p *reportParams) {
			ctx := context.Background()
			e, err := openEnv(ctx, p.Guest)
			if err != nil {
				fail("%v", err)
			}
			defer e.store.Close()

			price := p.Price
			if price <= 0 {
				price = e.cfg.UnitPrice
			}

			records, err := e.store.ListCustomers(ctx, e.owner)
			if err != nil {
				fail("%v", err)
			}
			if len(records) == 0 {
				fmt.Println("No data to report on.")
				return
			}

			total, buckets := core.Aggregate(records, price)
			core.RenderRevenue(os.Stdout, total, buckets, price, core.GetCurrency(e.cfg.Currency))
		})
}

type credentialParams struct {
	User string `descr:"Username"`
	Pass string `descr:"Password"`
}

// openAccountStore opens the persistent store for account commands, which
// never run in guest mode.
func openAccountStore() (store.Store, string) {
	cfgDir := core.DefaultConfigDir()
	cfg, err := core.LoadConfig(filepath.Join(cfgDir, "config.yaml"))
	if err != nil {
		fail("%v", err)
	}
	st, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		fail("%v", err)
	}
	return st, cfgDir
}

func registerCmd() boa.CmdIfc {
	return boa.NewCmdT[credentialParams]("register").
		WithShort("Create an account").
		WithRunFunc(func(p *credentialParams) {
			st, _ := openAccountStore()
			defer st.Close()

			err := auth.Register(context.Background(), st, p.User, p.Pass)
			if errors.Is(err, auth.ErrUserExists) {
				fail("account %q already exists", p.User)
			}
			if err != nil {
				fail("%v", err)
			}
			fmt.Printf("Account %q created. Run 'subtrack login' to start.\n", p.User)
		})
}

func loginCmd() boa.CmdIfc {
	return boa.NewCmdT[credentialParams]("login").
		WithShort("Log in and store a session").
		WithRunFunc(func(p *credentialParams) {
			st, cfgDir := openAccountStore()
			defer st.Close()

			username, err := auth.Login(context.Background(), st, p.User, p.Pass)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				fail("invalid credentials")
			}
			if err != nil {
				fail("%v", err)
			}
			if err := auth.NewSessions(cfgDir).Open(username); err != nil {
				fail("%v", err)
			}
			fmt.Printf("Logged in as %s\n", username)
		})
}

func logoutCmd() boa.CmdIfc {
	return boa.NewCmdT[struct{}]("logout").
		WithShort("Discard the stored session").
		WithRunFunc(func(_ *struct{}) {
			if err := auth.NewSessions(core.DefaultConfigDir()).Close(); err != nil {
				fail("%v", err)
			}
			fmt.Println("Logged out.")
		})
}
