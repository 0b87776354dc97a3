package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/kk-code-lab/citemark/internal/anchor"
	apppkg "github.com/kk-code-lab/citemark/internal/app"
	"github.com/kk-code-lab/citemark/internal/citation"
	"github.com/kk-code-lab/citemark/internal/content"
)

func printHelp() {
	fmt.Print(`citemark - Locate and view citations in text documents

USAGE:
    citemark [OPTIONS] FILE

OPTIONS:
    -h, --help            Show this help message and exit
    -e, --exact TEXT      Quoted passage to locate in FILE
    -p, --prefix TEXT     Context immediately before the passage
    -s, --suffix TEXT     Context immediately after the passage
    -c, --citation FILE   Read the selector from a citation JSON file
    -j, --json            Print the anchoring result as JSON and exit

FILE may be Markdown, HTML, or plain text. Without --json the document
opens in a pager with the located passage highlighted.
`)
}

type options struct {
	file     string
	selector anchor.Selector
	citation string
	jsonOut  bool
}

func parseArgs(args []string) (options, error) {
	var opts options
	take := func(i int, flag string) (string, int, error) {
		if eq := strings.IndexByte(flag, '='); eq >= 0 {
			return flag[eq+1:], i, nil
		}
		if i+1 >= len(args) {
			return "", i, fmt.Errorf("%s requires a value", flag)
		}
		return args[i+1], i + 1, nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error
		switch {
		case arg == "-h" || arg == "--help":
			printHelp()
			os.Exit(0)
		case arg == "-j" || arg == "--json":
			opts.jsonOut = true
		case arg == "-e" || arg == "--exact" || strings.HasPrefix(arg, "--exact="):
			opts.selector.Exact, i, err = take(i, arg)
		case arg == "-p" || arg == "--prefix" || strings.HasPrefix(arg, "--prefix="):
			opts.selector.Prefix, i, err = take(i, arg)
		case arg == "-s" || arg == "--suffix" || strings.HasPrefix(arg, "--suffix="):
			opts.selector.Suffix, i, err = take(i, arg)
		case arg == "-c" || arg == "--citation" || strings.HasPrefix(arg, "--citation="):
			opts.citation, i, err = take(i, arg)
		case strings.HasPrefix(arg, "-") && arg != "-":
			err = fmt.Errorf("unknown option %s", arg)
		default:
			if opts.file != "" {
				err = fmt.Errorf("unexpected argument %s", arg)
			} else {
				opts.file = arg
			}
		}
		if err != nil {
			return opts, err
		}
	}
	if opts.file == "" {
		return opts, fmt.Errorf("no input file given")
	}
	if opts.citation == "" && opts.selector.Exact == "" {
		return opts, fmt.Errorf("either --exact or --citation is required")
	}
	if opts.citation != "" && opts.selector.Exact != "" {
		return opts, fmt.Errorf("--exact and --citation are mutually exclusive")
	}
	return opts, nil
}

// loadSelector resolves the selector, reading the citation file when
// one was given. A web locator yields no selector; it is handed back so
// the caller can report it instead of anchoring. Selector text is
// NFC-folded so it composes the same way as loaded documents.
func loadSelector(opts options) (anchor.Selector, *citation.WebURL, error) {
	sel := opts.selector
	if opts.citation != "" {
		data, err := os.ReadFile(opts.citation)
		if err != nil {
			return sel, nil, fmt.Errorf("read citation: %w", err)
		}
		cit, err := citation.Parse(data)
		if err != nil {
			return sel, nil, err
		}
		if cit.Locator.Kind == citation.LocatorWebURL {
			return sel, cit.Locator.Web, nil
		}
		var ok bool
		sel, ok = cit.Locator.Selector()
		if !ok {
			return sel, nil, fmt.Errorf("citation locator carries no text selector")
		}
	}
	sel.Exact = norm.NFC.String(sel.Exact)
	sel.Prefix = norm.NFC.String(sel.Prefix)
	sel.Suffix = norm.NFC.String(sel.Suffix)
	return sel, nil, nil
}

// jsonResult is the headless output shape. It extends the anchor
// result with the matched document text when a span was placed.
type jsonResult struct {
	anchor.Result
	Text string `json:"text,omitempty"`
}

func run() error {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		return err
	}
	sel, web, err := loadSelector(opts)
	if err != nil {
		return err
	}
	if web != nil {
		fmt.Printf("citation resolves to a web resource, not a local passage:\n  %s\n", web.URL)
		return nil
	}
	doc, err := content.Load(opts.file)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		result, span := apppkg.Resolve(doc, sel)
		out := jsonResult{Result: result}
		if span != nil {
			out.Text = span.Text()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return err
		}
		if !result.Found {
			os.Exit(2)
		}
		return nil
	}

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	viewer, err := apppkg.NewApplication(apppkg.Config{Doc: doc, Selector: sel})
	if err != nil {
		return err
	}
	return viewer.Run()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "citemark: %v\n", err)
		os.Exit(1)
	}
}
