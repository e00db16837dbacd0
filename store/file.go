package store

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"smallbiz_inventory/domain"
)

// fileHeader opens every saved inventory file. Lines starting with "#" and
// blank lines are skipped on load.
const fileHeader = "# SmallBiz Inventory Data File\n" +
	"# Format: Type,SKU,Name,Price,Quantity,Category,[Type-specific fields]\n"

// SaveToFile writes the inventory to the configured data file path
func (inv *Inventory) SaveToFile() error {
	return inv.SaveTo(inv.dataFilePath)
}

// SaveTo writes every product as one serialized line to path, in sequence
// order. The file is written to a temporary sibling first and renamed into
// place.
func (inv *Inventory) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fileHeader)
	for _, p := range inv.products {
		sb.WriteString(p.MarshalCSV())
		sb.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	inv.logger.Info("inventory saved",
		zap.String("path", path),
		zap.Int("products", len(inv.products)))
	return nil
}

// LoadFromFile replaces the inventory with the contents of the configured
// data file path
func (inv *Inventory) LoadFromFile() error {
	return inv.LoadFrom(inv.dataFilePath)
}

// LoadFrom replaces the inventory with the products parsed from path. The
// current contents are cleared only once the file opens. Comment lines,
// blank lines and lines that fail to parse are skipped without failing the
// load, whatever their length; a SKU seen twice keeps its first occurrence.
func (inv *Inventory) LoadFrom(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	inv.ClearAll()
	skipped := 0
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" && !strings.HasPrefix(text, "#") {
			p, err := domain.UnmarshalCSV(text)
			if err != nil {
				skipped++
				inv.logger.Debug("skipping unparseable line", zap.String("line", text), zap.Error(err))
			} else if err := inv.AddProduct(p); err != nil {
				skipped++
				inv.logger.Debug("skipping product", zap.String("line", text), zap.Error(err))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	inv.logger.Info("inventory loaded",
		zap.String("path", path),
		zap.Int("products", len(inv.products)),
		zap.Int("skipped", skipped))
	return nil
}
