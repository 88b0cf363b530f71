package finallist

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"github.com/ukaji3/finallist-go/pkg/finallist/parser"
	"github.com/ukaji3/finallist-go/pkg/finallist/render"
	"go.uber.org/zap"
)

// recalcTimeout bounds the external recalculation helper.
const recalcTimeout = 30 * time.Second

// recalcArg is the fixed numeric argument passed to the helper.
const recalcArg = "30"

// Result summarizes a completed merge run.
type Result struct {
	// OutputPath is the saved workbook.
	OutputPath string
	// Scans holds the per-file scan results in input order.
	Scans []models.ScanResult
	// OrderCount is the number of orders rendered into the output.
	OrderCount int
	// ItemCount is the total item count across rendered orders.
	ItemCount int
}

// Merger runs merge operations. Exactly one merge may be in flight; further
// requests are rejected with ErrMergeInProgress until it finishes.
type Merger struct {
	mu     sync.Mutex
	state  State
	log    *zap.Logger
	params parser.ScanParams

	// now is swapped in tests to pin the output file name.
	now func() time.Time
}

// NewMerger returns a Merger in the idle state.
func NewMerger(log *zap.Logger) *Merger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{
		log:    log,
		params: parser.DefaultScanParams(),
		now:    time.Now,
	}
}

// State returns the current lifecycle state.
func (m *Merger) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Merger) transition(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// begin moves idle/done/error to scanning, rejecting re-entry while busy.
func (m *Merger) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.busy() {
		return ErrMergeInProgress
	}
	m.state = StateScanning
	return nil
}

// Scan extracts every source file without rendering anything. Per-file
// failures are reported in the results, never as an error.
func (m *Merger) Scan(ctx context.Context, paths []string, jobs int) []models.ScanResult {
	return parser.ScanFiles(ctx, paths, m.params, jobs)
}

// Merge runs the whole pipeline: pre-flight checks, source scanning,
// rendering, and the optional post-processing hook. Pre-flight failures
// abort before anything is written; a failure during the write leaves any
// partial output file in place.
func (m *Merger) Merge(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}
	if err := m.begin(); err != nil {
		return nil, err
	}

	res, err := m.run(ctx, paths, opts)
	if err != nil {
		m.transition(StateError)
		return nil, err
	}
	m.transition(StateDone)
	return res, nil
}

func (m *Merger) run(ctx context.Context, paths []string, opts Options) (*Result, error) {
	templatePath, err := m.resolveTemplate(opts)
	if err != nil {
		return nil, &MergeError{Stage: "preflight", Err: err}
	}
	if isFileLocked(templatePath) {
		return nil, &MergeError{Stage: "preflight", Err: ErrTemplateLocked}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(paths[0])
	}
	if !isDirWritable(outputDir) {
		return nil, &MergeError{Stage: "preflight", Err: fmt.Errorf("%w: %s", ErrOutputDirUnwritable, outputDir)}
	}
	outputPath := filepath.Join(outputDir, m.outputName())

	m.log.Info("merge started",
		zap.Int("sources", len(paths)),
		zap.String("template", templatePath),
		zap.String("output", outputPath))

	scans := parser.ScanFiles(ctx, paths, m.params, opts.Jobs)
	for _, sr := range scans {
		if sr.Outcome != models.ScanOK {
			m.log.Warn("source skipped",
				zap.String("path", sr.Path),
				zap.String("reason", sr.Outcome.String()),
				zap.Error(sr.Err))
		}
	}

	m.transition(StateMerging)

	mc := models.MergeContext{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
	}
	orderCount := 0
	for _, sr := range scans {
		mc.Orders = append(mc.Orders, sr.Record)
		if sr.Record != nil {
			orderCount++
		}
	}

	itemCount, err := render.Render(mc, render.Options{ShowHeaderInfo: opts.ShowHeaderInfo}, m.log)
	if err != nil {
		return nil, &MergeError{Stage: "render", Err: err}
	}

	if opts.RecalcHelper != "" {
		m.runRecalcHelper(ctx, opts.RecalcHelper, outputPath)
	}
	if opts.AutoOpen {
		openFile(outputPath)
	}

	m.log.Info("merge finished",
		zap.Int("orders", orderCount),
		zap.Int("items", itemCount),
		zap.String("output", outputPath))

	return &Result{
		OutputPath: outputPath,
		Scans:      scans,
		OrderCount: orderCount,
		ItemCount:  itemCount,
	}, nil
}

// resolveTemplate finds the template workbook, defaulting to the file beside
// the executable.
func (m *Merger) resolveTemplate(opts Options) (string, error) {
	path := opts.TemplatePath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", err
		}
		path = filepath.Join(filepath.Dir(exe), TemplateFileName)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	return path, nil
}

func (m *Merger) outputName() string {
	return fmt.Sprintf("MERGED_FINAL_LIST_%s.xlsx", m.now().Format("20060102_150405"))
}

// runRecalcHelper invokes the external recalculation executable with the
// output path. Its failure is non-fatal.
func (m *Merger) runRecalcHelper(ctx context.Context, helper, outputPath string) {
	ctx, cancel := context.WithTimeout(ctx, recalcTimeout)
	defer cancel()
	if err := exec.CommandContext(ctx, helper, outputPath, recalcArg).Run(); err != nil {
		m.log.Warn("recalc helper failed", zap.String("helper", helper), zap.Error(err))
	}
}

// isFileLocked probes whether a file is held open exclusively elsewhere.
// The probe is advisory; save failures are still handled.
func isFileLocked(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return true
	}
	f.Close()
	return false
}

// isDirWritable probes a directory with a throwaway file.
func isDirWritable(dir string) bool {
	probe := filepath.Join(dir, ".write_test_tmp")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// openFile hands the path to the platform opener. Failures are ignored.
func openFile(path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	_ = cmd.Start()
}
