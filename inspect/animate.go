package inspect

import (
	"context"
	"errors"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"stylebridge/animation"
	"stylebridge/config"
	"stylebridge/state"
	"stylebridge/style"
)

// Frame is animated style sampled at the moment since animation start.
type Frame struct {
	At    time.Duration
	State animation.State
	Style map[string]any
}

// SampleOptions controls animation playback.
type SampleOptions struct {
	FrameRate int
	// Length is how long to play, 0 plays delay and all iterations, single
	// iteration for infinite animations.
	Length        time.Duration
	NativeDriver  bool
	ReducedMotion bool
	// Resolver resolves keyframe values against Context, when nil keyframe
	// values are used as declared.
	Resolver *style.Resolver
	Context  style.Context
}

// Animate plays animation of a style from stylesheet document frame by
// frame and outputs sampled styles.
func Animate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("animate")

	src, name := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 || len(name) == 0 {
		return errors.New("stylesheet document and style name must be specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	doc, err := env.LoadDocument(src)
	if doc == nil {
		return err
	}
	st, ok := doc.Sheet.Style(name)
	if !ok {
		return fmt.Errorf("style %q is not defined in %s", name, doc.Name)
	}

	rc, err := renderContext(env.Cfg.Styling.Context(), cmd)
	if err != nil {
		return err
	}
	rc.Vars = doc.Vars

	opts := SampleOptions{
		FrameRate:     env.Cfg.Animation.FrameRate,
		Length:        cmd.Duration("for"),
		NativeDriver:  env.Cfg.Animation.UseNativeDriver,
		ReducedMotion: rc.PrefersReducedMotion,
		Resolver:      env.Resolver,
		Context:       rc,
	}
	if cmd.IsSet("native") {
		opts.NativeDriver = cmd.Bool("native")
	}

	frames, err := Sample(ctx, log, env.Keyframes, env.Resolver.Resolve(rc, st), opts)
	if err != nil {
		return err
	}
	data, err := EncodeFrames(frames)
	if err != nil {
		return err
	}
	env.Rpt.StoreData(fmt.Sprintf("animated/%s.yaml", config.CleanEntryName(doc.Name+"-"+name)), data)
	return writeOutput(cmd.String("output"), data, log)
}

// Sample drives animation of resolved style on a timeline and collects
// style of every frame, including the first and the last one.
func Sample(ctx context.Context, log *zap.Logger, reg *animation.Registry, res style.Result, opts SampleOptions) ([]Frame, error) {
	meta, err := animation.MetadataFromStyle(res.Animation)
	if err != nil {
		log.Warn("Animation properties are invalid, using defaults", zap.Error(err))
	}
	if len(meta.Name) == 0 {
		return nil, ErrNoAnimation
	}
	if _, ok := reg.Resolve(meta.Name); !ok {
		return nil, fmt.Errorf("keyframes %q: %w", meta.Name, animation.ErrUnknownKeyframes)
	}
	if opts.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", opts.FrameRate)
	}
	meta.NativeDriver = opts.NativeDriver

	length := opts.Length
	if length <= 0 {
		length = playLength(meta)
	}
	step := time.Second / time.Duration(opts.FrameRate)

	tl := animation.NewTimeline()
	copts := []animation.ControllerOption{animation.WithReducedMotion(opts.ReducedMotion)}
	if opts.Resolver != nil {
		copts = append(copts, animation.WithStopResolver(func(values map[string]any) map[string]any {
			return opts.Resolver.Values(opts.Context, values)
		}))
	}
	c := animation.NewController(log, reg, tl, meta, copts...)
	defer c.Dispose()

	c.Start()
	frames := make([]Frame, 0, int(length/step)+2)
	for at := time.Duration(0); ; at += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frames = append(frames, Frame{At: at, State: c.State(), Style: c.Style(res.Style)})
		if at >= length {
			break
		}
		tl.Advance(step)
	}
	log.Debug("Animation sampled", zap.String("keyframes", meta.Name), zap.Int("frames", len(frames)), zap.Duration("length", length))
	return frames, nil
}

func playLength(meta animation.Metadata) time.Duration {
	if meta.Infinite() {
		return meta.Delay + meta.Duration
	}
	return meta.Delay + time.Duration(float64(meta.Duration)*meta.Iterations)
}

// EncodeFrames produces YAML sequence of sampled frames.
func EncodeFrames(frames []Frame) ([]byte, error) {
	out := make([]any, 0, len(frames))
	for _, f := range frames {
		out = append(out, map[string]any{
			"at":    f.At.String(),
			"state": f.State.String(),
			"style": f.Style,
		})
	}
	n, err := node(out)
	if err != nil {
		return nil, fmt.Errorf("unable to encode frames: %w", err)
	}
	n.Style = 0
	return yaml.Marshal(n)
}
