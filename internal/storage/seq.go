package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SeqSuffix is appended to the products path to name the id high-water file.
const SeqSuffix = ".seq"

// SeqPath returns the high-water file path for a products file.
func SeqPath(productsPath string) string {
	return productsPath + SeqSuffix
}

// ReadHighWater returns the highest id ever assigned for the products file.
// A missing file returns 0. The products file itself stays a plain list of
// records, so this sidecar is what keeps ids from being reused after the
// highest product is deleted.
func ReadHighWater(productsPath string) (int, error) {
	data, err := os.ReadFile(SeqPath(productsPath))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading id sequence: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("parsing id sequence %q", strings.TrimSpace(string(data)))
	}
	return n, nil
}

// WriteHighWater records id as the highest id assigned so far.
func WriteHighWater(productsPath string, id int) error {
	data := []byte(strconv.Itoa(id) + "\n")
	if err := os.WriteFile(SeqPath(productsPath), data, 0644); err != nil {
		return fmt.Errorf("writing id sequence: %w", err)
	}
	return nil
}
