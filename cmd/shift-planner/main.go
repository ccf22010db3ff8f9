package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/shift-planner/internal/config"
	"github.com/username/shift-planner/internal/roster"
	"github.com/username/shift-planner/internal/store"
	"github.com/username/shift-planner/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shift-planner",
		Short: "Staff shift scheduling engine",
		Long:  "Resolve per-day staff statuses from shifts, attendance, leaves and holidays, and manage shift assignments",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(weekCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(holidayCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStore() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()

	st, err := store.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func weekCmd() *cobra.Command {
	var dateStr string
	var storeID string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the resolved shift calendar for one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			pivot := dateutil.Today()
			if dateStr != "" {
				var err error
				if pivot, err = dateutil.ParseDate(dateStr); err != nil {
					return err
				}
			}

			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			if storeID == "" {
				storeID = cfg.Store.ID
			}
			if storeID == "" {
				return fmt.Errorf("no store id: pass --store or set store.id in config")
			}

			week := dateutil.WeekOf(pivot)

			snap, err := st.LoadSnapshot(storeID, week[0], week[6])
			if err != nil {
				return err
			}

			grid := roster.Project(snap.Employees, week, snap)
			printGrid(grid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Any date inside the week (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&storeID, "store", "s", "", "Store id (default from config)")
	return cmd
}

func assignCmd() *cobra.Command {
	req := roster.AssignmentRequest{}

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Validate and create a shift assignment (single date or range)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			if req.StoreID == "" {
				req.StoreID = cfg.Store.ID
			}

			window := requestWindow(req)
			snap, err := st.LoadSnapshot(req.StoreID, window[0], window[1])
			if err != nil {
				return err
			}

			// New assignments are never allowed on past dates.
			validated, err := roster.Validate(req, snap, roster.ValidateOptions{})
			if err != nil {
				return err
			}

			rows, err := st.CreateRange(validated)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Created %d assignment(s) for %s (%s)\n",
				len(rows), req.EmployeeID, validated.ShiftLabel)
			return nil
		},
	}

	bindRequestFlags(cmd, &req)
	return cmd
}

func editCmd() *cobra.Command {
	var id string
	req := roster.AssignmentRequest{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Validate and update an existing assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id is required")
			}

			cfg, st, err := openStore()
			if err != nil {
				return err
			}
			if req.StoreID == "" {
				req.StoreID = cfg.Store.ID
			}

			window := requestWindow(req)
			snap, err := st.LoadSnapshot(req.StoreID, window[0], window[1])
			if err != nil {
				return err
			}

			// Edits may correct a past, not-yet-attended date.
			validated, err := roster.Validate(req, snap, roster.ValidateOptions{AllowPastDate: true})
			if err != nil {
				return err
			}

			if err := st.UpdateAssignment(id, validated); err != nil {
				return err
			}

			fmt.Printf("✅ Updated assignment %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Assignment id to update")
	bindRequestFlags(cmd, &req)
	return cmd
}

func removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <assignment-id>",
		Short: "Delete an assignment by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			if err := st.DeleteAssignment(args[0]); err != nil {
				return err
			}
			fmt.Printf("✅ Deleted assignment %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func holidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage the holiday calendar",
	}

	var title, dateStr, endStr string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a holiday (single date or inclusive range)",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(dateStr)
			if err != nil {
				return err
			}

			h := roster.Holiday{Title: title, Date: date, Active: true}
			if endStr != "" {
				end, err := dateutil.ParseDate(endStr)
				if err != nil {
					return err
				}
				h.EndDate = &end
			}

			_, st, err := openStore()
			if err != nil {
				return err
			}
			created, err := st.AddHoliday(h)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Added holiday %s (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&title, "title", "t", "", "Holiday title")
	addCmd.Flags().StringVarP(&dateStr, "date", "d", "", "Holiday date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&endStr, "end", "e", "", "Range end date (YYYY-MM-DD, optional)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			holidays, err := st.Holidays()
			if err != nil {
				return err
			}
			for _, h := range holidays {
				span := dateutil.FormatDate(h.Date)
				if h.EndDate != nil {
					span += " .. " + dateutil.FormatDate(*h.EndDate)
				}
				state := "active"
				if !h.Active {
					state = "inactive"
				}
				fmt.Printf("%-14s %-24s %s (%s)\n", span, h.Title, state, h.ID)
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	return cmd
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import employees, shift types, attendance and leaves from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			counts, err := store.ImportFixture(st, file)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Imported %d employees, %d shift types, %d attendance records, %d leaves\n",
				counts.Employees, counts.ShiftTypes, counts.Attendance, counts.Leaves)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.json", "Fixture file path")
	return cmd
}

// bindRequestFlags attaches the shared assignment request flags.
func bindRequestFlags(cmd *cobra.Command, req *roster.AssignmentRequest) {
	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "Employee id")
	cmd.Flags().StringVar(&req.StoreID, "store", "", "Store id (default from config or employee)")
	cmd.Flags().StringVar(&req.ShiftTypeID, "shift", "", "Shift type id")
	cmd.Flags().StringVar(&req.StartDate, "date", "", "Assignment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "Range end date (YYYY-MM-DD, optional)")
	cmd.Flags().StringSliceVar(&req.WeekOff, "week-off", nil, "Week-off override, e.g. sunday,saturday")
}

// requestWindow returns the [from, to] snapshot window covering the request's
// dates. Absent or malformed dates fall back to today; the validator reports
// those properly once the snapshot is loaded.
func requestWindow(req roster.AssignmentRequest) [2]time.Time {
	from := dateutil.Today()
	if req.StartDate != "" {
		if d, err := dateutil.ParseDate(req.StartDate); err == nil {
			from = d
		}
	}
	to := from
	if req.EndDate != "" {
		if d, err := dateutil.ParseDate(req.EndDate); err == nil && d.After(to) {
			to = d
		}
	}
	return [2]time.Time{from, to}
}

// printGrid renders the week view, one row per employee.
func printGrid(grid *roster.Grid) {
	fmt.Printf("%-20s", "Employee")
	for _, d := range grid.Dates {
		fmt.Printf(" %-12s", d.Format("Mon 01-02"))
	}
	fmt.Println()

	for _, emp := range grid.Employees {
		fmt.Printf("%-20s", emp.Name)
		for _, d := range grid.Dates {
			fmt.Printf(" %-12s", cellText(grid.At(emp.ID, d)))
		}
		fmt.Println()
	}
}

func cellText(ds roster.DayStatus) string {
	switch ds.Status {
	case roster.StatusShift:
		return ds.ShiftLabel
	case roster.StatusPresent, roster.StatusLate:
		if ds.ShiftLabel != "" {
			return string(ds.Status) + " " + ds.ShiftLabel
		}
		return string(ds.Status)
	case roster.StatusEmpty:
		return "-"
	default:
		return strings.ToUpper(string(ds.Status[0])) + string(ds.Status[1:])
	}
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
