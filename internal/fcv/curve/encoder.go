package curve

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/interfaces"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
)

// Encoder はタイムラインから全種類のカーブを生成します
type Encoder struct {
	emitters []Emitter
	logger   interfaces.Logger
}

// NewEncoder はDefaultEmittersを使うEncoderを作成します
func NewEncoder(logger interfaces.Logger) *Encoder {
	return NewEncoderWithEmitters(logger, DefaultEmitters()...)
}

// NewEncoderWithEmitters は指定した順序のEmitterを使うEncoderを作成します
func NewEncoderWithEmitters(logger interfaces.Logger, emitters ...Emitter) *Encoder {
	return &Encoder{
		emitters: emitters,
		logger:   logger,
	}
}

// Encode はEmitterを順番に実行し、生成されたカーブを出力順に返します
func (e *Encoder) Encode(frames []models.Frame) ([]*Curve, error) {
	results := make([]*Curve, len(e.emitters))
	for i, em := range e.emitters {
		c, err := em.Produce(frames)
		if err != nil {
			return nil, err
		}
		results[i] = c
	}
	return e.collect(results), nil
}

// EncodeParallel はEmitterを並列に実行します。
// 最初のエラーで残りをキャンセルし、結果の順序はEncodeと同じです。
func (e *Encoder) EncodeParallel(ctx context.Context, frames []models.Frame) ([]*Curve, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]*Curve, len(e.emitters))

	for i, em := range e.emitters {
		i, em := i, em
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := em.Produce(frames)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e.collect(results), nil
}

// collect は出力されなかったカーブを除きます
func (e *Encoder) collect(results []*Curve) []*Curve {
	curves := make([]*Curve, 0, len(results))
	for i, c := range results {
		if c == nil {
			e.logf("%s: 対象フレームがないため出力しません\n", e.emitters[i].Suffix())
			continue
		}
		e.logf("%s: %d レコード\n", c.Suffix, c.Records)
		curves = append(curves, c)
	}
	return curves
}

func (e *Encoder) logf(format string, a ...any) {
	if e.logger != nil {
		e.logger.Printf(format, a...)
	}
}
