// Package exporter writes the AP inventory to CSV.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"apinventory/internal/models"
	"apinventory/pkg/utils"
)

// DateFormat is the layout of the date column.
const DateFormat = "2006-01-02 15:04:05"

// Header is the fixed column order of the inventory.
var Header = []string{
	"date", "bssid", "oui_vendor",
	"ssid", "chan",
	"bandwidth", "bandwidth_mhz",
	"beacon_int", "rssi_dbm",
	"ie_keys", "rsn_ies",
	"entropy_penalty",
}

// Row renders one record in column order. Unknown numbers are empty cells.
func Row(rec models.NormalizedRecord) []string {
	return []string{
		rec.Date.Format(DateFormat),
		rec.BSSID,
		rec.OUIVendor,
		rec.SSID,
		rec.Channel,
		rec.BandwidthRaw,
		formatInt(rec.BandwidthMHz),
		formatFloat(rec.BeaconInt),
		formatFloat(rec.RSSIdBm),
		utils.FormatList(rec.IEKeys),
		rec.RSNIEs,
		strconv.Itoa(rec.EntropyPenalty),
	}
}

// Write writes the header and one row per record to w.
func Write(w io.Writer, records []models.NormalizedRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(Row(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// WriteFile replaces path with the inventory. The data goes to a temporary
// file in the same directory first, so a failed export leaves any previous
// file untouched.
func WriteFile(path string, records []models.NormalizedRecord) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set CSV permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}

	return utils.FormatDecimal(*v)
}
