package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/geometry"
)

func parseNumbers(raw string, want int) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", want, raw)
	}
	out := make([]float64, want)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", p, raw)
		}
		out[i] = v
	}
	return out, nil
}

// parseRect reads "x,y,width,height".
func parseRect(raw string) (geometry.Rect, error) {
	n, err := parseNumbers(raw, 4)
	if err != nil {
		return geometry.Rect{}, err
	}
	if n[2] < 0 || n[3] < 0 {
		return geometry.Rect{}, fmt.Errorf("negative size in %q", raw)
	}
	return geometry.Rect{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, nil
}

// parseSize reads "width,height".
func parseSize(raw string) (geometry.Size, error) {
	n, err := parseNumbers(raw, 2)
	if err != nil {
		return geometry.Size{}, err
	}
	if n[0] < 0 || n[1] < 0 {
		return geometry.Size{}, fmt.Errorf("negative size in %q", raw)
	}
	return geometry.Size{Width: n[0], Height: n[1]}, nil
}

// readDocument parses the HTML file named by args[0], or stdin when no
// file or "-" is given.
func readDocument(cmd *cobra.Command, args []string) (*dom.Document, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return dom.Parse(string(data))
}

func queryRequired(doc *dom.Document, selector, what string) (*dom.Node, error) {
	n, err := dom.Query(doc.Root, selector)
	if err != nil {
		return nil, fmt.Errorf("invalid %s selector %q: %w", what, selector, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%s selector %q matched nothing", what, selector)
	}
	return n, nil
}
