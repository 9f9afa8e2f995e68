package detdecode

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadLabels reads the labels used to train the Model from the given text file.
// It should contain one label per line, blank lines are skipped.
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, errors.Wrap(err, "error opening labels file")
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var labels []string

	// read and trim each line, files saved on windows carry a trailing \r
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		labels = append(labels, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading labels file")
	}

	return labels, nil
}

// LabelName returns the label for the given class index, or a placeholder
// naming the index when the labels do not cover it
func LabelName(labels []string, class int) string {

	if class >= 0 && class < len(labels) {
		return labels[class]
	}

	return "class " + strconv.Itoa(class)
}
