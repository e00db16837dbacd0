// Package cli provides the Cobra-based CLI for the SmallBiz inventory tool.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"smallbiz_inventory/domain"
	"smallbiz_inventory/store"
	"smallbiz_inventory/util"
)

var (
	rootCmd = &cobra.Command{
		Use:   "inventory",
		Short: "SmallBiz product inventory manager",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject an inventory
			if inv != nil {
				return nil
			}

			// a local .env feeds the INVENTORY_* variables read below
			_ = godotenv.Load()

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			var err error
			logger, err = newLogger(viper.GetString("log-level"))
			if err != nil {
				return err
			}

			inv = store.NewInventory(viper.GetString("file"), logger)
			if err := inv.LoadFromFile(); err != nil {
				logger.Info("no existing inventory file, starting fresh",
					zap.String("path", inv.DataFilePath()),
					zap.Error(err),
				)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			resetFlags(cmd)
		},
	}

	inv    *store.Inventory
	logger = zap.NewNop()
)

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("inventory> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					// post-run hooks are skipped on error, so sweep here
					fmt.Fprintln(os.Stderr, err)
					resetAllFlags(rootCmd)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("file", "inventory.csv", "inventory data file")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("INVENTORY")
	viper.AutomaticEnv()

	// add
	var aType, aSKU, aName, aCategory string
	var aPrice, aWeight, aSize float64
	var aQuantity int
	var aSupplier, aLink, aLicense string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if aName == "" {
				return errors.New("name required")
			}
			if !validAmount(aPrice) {
				return domain.NewValidationError("price", "must be a finite non-negative number", aPrice)
			}
			if aQuantity < 0 {
				return domain.NewValidationError("quantity", "must be non-negative", aQuantity)
			}
			if !validAmount(aWeight) {
				return domain.NewValidationError("weight", "must be a finite non-negative number", aWeight)
			}
			if !validAmount(aSize) {
				return domain.NewValidationError("size", "must be a finite non-negative number", aSize)
			}

			sku := aSKU
			if sku == "" {
				sku = util.GenerateSKU()
			}
			if inv.SKUExists(sku) {
				return domain.NewDuplicateSKUError(sku)
			}

			price := decimal.NewFromFloat(aPrice)
			var p domain.Product
			switch strings.ToLower(aType) {
			case "physical":
				p = domain.NewPhysical(sku, aName, price, aQuantity, aCategory, aWeight, aSupplier)
			case "digital":
				p = domain.NewDigital(sku, aName, price, aQuantity, aCategory, aLink, aSize, aLicense)
			default:
				return domain.NewUnknownTypeError(aType)
			}

			start := time.Now()
			if err := inv.AddProduct(p); err != nil {
				logger.Error("add failed", zap.String("sku", sku), zap.Error(err))
				return err
			}
			if err := inv.SaveToFile(); err != nil {
				return err
			}
			logger.Info("product added", zap.String("sku", sku), zap.Int64("duration_ms", time.Since(start).Milliseconds()))
			fmt.Println(domain.TableHeader())
			fmt.Println(p.Display())
			return nil
		},
	}
	addCmd.Flags().StringVar(&aType, "type", "physical", "product type: physical|digital")
	addCmd.Flags().StringVar(&aSKU, "sku", "", "sku (generated when empty)")
	addCmd.Flags().StringVar(&aName, "name", "", "name")
	addCmd.Flags().Float64Var(&aPrice, "price", 0, "price")
	addCmd.Flags().IntVar(&aQuantity, "quantity", 0, "quantity")
	addCmd.Flags().StringVar(&aCategory, "category", "", "category")
	addCmd.Flags().Float64Var(&aWeight, "weight", 0, "shipping weight in pounds (physical)")
	addCmd.Flags().StringVar(&aSupplier, "supplier", "", "supplier (physical)")
	addCmd.Flags().StringVar(&aLink, "link", "", "download link (digital)")
	addCmd.Flags().Float64Var(&aSize, "size", 0, "file size in MB (digital)")
	addCmd.Flags().StringVar(&aLicense, "license", "Single", "license type (digital)")
	rootCmd.AddCommand(addCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <sku>",
		Short: "Get product by SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := inv.GetProduct(args[0])
			if !ok {
				fmt.Fprintln(os.Stderr, domain.NewNotFoundError(args[0]))
				return nil
			}
			fmt.Println(domain.TableHeader())
			fmt.Println(p.Display())
			return nil
		},
	}
	rootCmd.AddCommand(getCmd)

	// update
	var uName string
	var uPrice float64
	var uQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <sku>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sku := args[0]

			var upd domain.ProductUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &uName
			}
			if cmd.Flags().Changed("price") {
				if !validAmount(uPrice) {
					return domain.NewValidationError("price", "must be a finite non-negative number", uPrice)
				}
				price := decimal.NewFromFloat(uPrice)
				upd.Price = &price
			}
			if cmd.Flags().Changed("quantity") {
				upd.Quantity = &uQuantity
			}

			start := time.Now()
			if err := inv.UpdateProduct(sku, upd); err != nil {
				logger.Error("update failed", zap.String("sku", sku), zap.Error(err))
				return err
			}
			if err := inv.SaveToFile(); err != nil {
				return err
			}
			logger.Info("product updated", zap.String("sku", sku), zap.Int64("duration_ms", time.Since(start).Milliseconds()))

			p, _ := inv.GetProduct(sku)
			fmt.Println(domain.TableHeader())
			fmt.Println(p.Display())
			return nil
		},
	}
	updateCmd.Flags().StringVar(&uName, "name", "", "name")
	updateCmd.Flags().Float64Var(&uPrice, "price", 0, "price")
	updateCmd.Flags().IntVar(&uQuantity, "quantity", 0, "quantity")
	rootCmd.AddCommand(updateCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderInventory(os.Stdout, inv)
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	// remove
	var force bool
	removeCmd := &cobra.Command{
		Use:   "remove <sku>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Remove %s? (y/N): ", args[0])
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := inv.RemoveProduct(args[0]); err != nil {
				return err
			}
			if err := inv.SaveToFile(); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
	removeCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)

	// search
	var sName, sCategory, sType string
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search products by name, category or type",
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := 0
			for _, flag := range []string{"name", "category", "type"} {
				if cmd.Flags().Changed(flag) {
					changed++
				}
			}
			if changed != 1 {
				return errors.New("exactly one of --name, --category or --type required")
			}

			var results []domain.Product
			switch {
			case cmd.Flags().Changed("name"):
				results = inv.SearchByName(sName)
			case cmd.Flags().Changed("category"):
				results = inv.SearchByCategory(sCategory)
			default:
				results = inv.SearchByType(sType)
			}

			fmt.Printf("Found %d product(s).\n", len(results))
			if len(results) > 0 {
				renderProducts(os.Stdout, results)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&sName, "name", "", "name substring")
	searchCmd.Flags().StringVar(&sCategory, "category", "", "category substring")
	searchCmd.Flags().StringVar(&sType, "type", "", "exact type: physical|digital")
	rootCmd.AddCommand(searchCmd)

	// sort
	sortCmd := &cobra.Command{
		Use:       "sort <field>",
		Short:     "Sort the inventory in place and persist the new order",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sku", "name", "price", "quantity", "value"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "sku":
				inv.SortBySKU()
			case "name":
				inv.SortByName()
			case "price":
				inv.SortByPrice()
			case "quantity":
				inv.SortByQuantity()
			case "value":
				inv.SortByValue()
			default:
				return fmt.Errorf("unknown sort field: %s", args[0])
			}
			if err := inv.SaveToFile(); err != nil {
				return err
			}
			renderInventory(os.Stdout, inv)
			return nil
		},
	}
	rootCmd.AddCommand(sortCmd)

	// report
	var threshold int
	reportCmd := &cobra.Command{
		Use:       "report <kind>",
		Short:     "Run a report: summary|low-stock|top-value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"summary", "low-stock", "top-value"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "summary":
				renderSummary(os.Stdout, inv.Summary())
			case "low-stock":
				if threshold < 1 {
					return errors.New("threshold must be at least 1")
				}
				results := inv.LowStock(threshold)
				fmt.Printf("===== LOW STOCK ALERT (Below %d units) =====\n", threshold)
				if len(results) == 0 {
					fmt.Println("No products are below the stock threshold.")
					return nil
				}
				renderProducts(os.Stdout, results)
			case "top-value":
				inv.SortByValue()
				if err := inv.SaveToFile(); err != nil {
					return err
				}
				renderInventory(os.Stdout, inv)
			default:
				return fmt.Errorf("unknown report: %s", args[0])
			}
			return nil
		},
	}
	reportCmd.Flags().IntVar(&threshold, "threshold", 10, "low stock threshold")
	rootCmd.AddCommand(reportCmd)

	// save
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Write the inventory to the data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := inv.SaveToFile(); err != nil {
				return err
			}
			fmt.Printf("Saved %d product(s) to %s\n", inv.Count(), inv.DataFilePath())
			return nil
		},
	}
	rootCmd.AddCommand(saveCmd)

	// load
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Reload the inventory from the data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := inv.LoadFromFile(); err != nil {
				fmt.Fprintln(os.Stderr, "could not load inventory:", err)
				return nil
			}
			fmt.Printf("Loaded %d product(s) from %s\n", inv.Count(), inv.DataFilePath())
			return nil
		},
	}
	rootCmd.AddCommand(loadCmd)
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

// newLogger builds a zap logger that writes to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// resetFlags restores a command's changed flags to their defaults. Shell mode
// reuses one command tree per process, so values set by an earlier line must
// not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// resetAllFlags sweeps the whole command tree
func resetAllFlags(root *cobra.Command) {
	resetFlags(root)
	for _, c := range root.Commands() {
		resetFlags(c)
	}
}

// validAmount reports whether a numeric flag value is a finite, non-negative
// number. pflag parses NaN and the infinities as ordinary float64 values;
// decimals cannot represent them.
func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
