package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/PauloHFS/bizbloom/internal/vector"
)

const (
	inputIDs      = "input_ids"
	inputMask     = "attention_mask"
	inputTypeIDs  = "token_type_ids"
	outputHidden  = "last_hidden_state"
	defaultSeqLen = 256
)

var ortEnvMu sync.Mutex

type ONNXConfig struct {
	// SharedLibraryPath points at libonnxruntime. Empty uses the loader default.
	SharedLibraryPath string
	ModelPath         string
	TokenizerPath     string
	MaxSeqLen         int
	ModelID           string
	Dimension         int
}

// ONNX runs a sentence-transformer model exported to ONNX and mean-pools its
// last hidden state over the attention mask.
type ONNX struct {
	mu        sync.RWMutex
	session   *ort.DynamicAdvancedSession
	tk        *tokenizer.Tokenizer
	cfg       ONNXConfig
	withTypes bool
}

func NewONNX(cfg ONNXConfig) (*ONNX, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, errors.New("onnx embedder requires model and tokenizer paths")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = defaultSeqLen
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}
	if cfg.ModelID == "" {
		cfg.ModelID = filepath.Base(cfg.ModelPath)
	}

	if err := initEnvironment(cfg.SharedLibraryPath); err != nil {
		return nil, err
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputs, _, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("inspect model: %w", err)
	}
	inputNames := []string{inputIDs, inputMask}
	withTypes := false
	for _, in := range inputs {
		if in.Name == inputTypeIDs {
			withTypes = true
			inputNames = append(inputNames, inputTypeIDs)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, inputNames, []string{outputHidden}, nil)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNX{session: session, tk: tk, cfg: cfg, withTypes: withTypes}, nil
}

func initEnvironment(libPath string) error {
	ortEnvMu.Lock()
	defer ortEnvMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

func (o *ONNX) Dimension() int {
	return o.cfg.Dimension
}

func (o *ONNX) ModelID() string {
	return o.cfg.ModelID
}

func (o *ONNX) Embed(ctx context.Context, text string) (vector.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.session == nil {
		return nil, errors.New("onnx embedder is closed")
	}

	enc, err := o.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	n := len(enc.Ids)
	if n > o.cfg.MaxSeqLen {
		n = o.cfg.MaxSeqLen
	}
	if n == 0 {
		return make(vector.Vector, o.cfg.Dimension), nil
	}

	ids := toInt64(enc.Ids[:n])
	mask := toInt64(enc.AttentionMask[:n])
	shape := ort.NewShape(1, int64(n))

	idsT, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, err
	}
	defer idsT.Destroy()

	maskT, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, err
	}
	defer maskT.Destroy()

	inputs := []ort.Value{idsT, maskT}
	if o.withTypes {
		types := make([]int64, n)
		if len(enc.TypeIds) >= n {
			types = toInt64(enc.TypeIds[:n])
		}
		typesT, err := ort.NewTensor(shape, types)
		if err != nil {
			return nil, err
		}
		defer typesT.Destroy()
		inputs = append(inputs, typesT)
	}

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(n), int64(o.cfg.Dimension)))
	if err != nil {
		return nil, err
	}
	defer out.Destroy()

	if err := o.session.Run(inputs, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	return meanPool(out.GetData(), mask, o.cfg.Dimension), nil
}

// meanPool averages token states weighted by the attention mask and L2
// normalises the result.
func meanPool(hidden []float32, mask []int64, dim int) vector.Vector {
	sum := make([]float64, dim)
	var count float64
	for t, m := range mask {
		if m == 0 {
			continue
		}
		row := hidden[t*dim : (t+1)*dim]
		for i, x := range row {
			sum[i] += float64(x)
		}
		count++
	}

	out := make(vector.Vector, dim)
	if count == 0 {
		return out
	}

	var norm float64
	for i := range sum {
		sum[i] /= count
		norm += sum[i] * sum[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	for i := range sum {
		out[i] = float32(sum[i] / norm)
	}
	return out
}

func toInt64(xs []int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
}

func (o *ONNX) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return nil
	}
	err := o.session.Destroy()
	o.session = nil
	return err
}
