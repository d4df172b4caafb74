package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arupbarman82/ft-chromebook-app/internal/asr"
	"github.com/arupbarman82/ft-chromebook-app/internal/jobstore"
	"github.com/arupbarman82/ft-chromebook-app/internal/links"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
	"github.com/arupbarman82/ft-chromebook-app/internal/qa"
	"github.com/arupbarman82/ft-chromebook-app/internal/transcript"
)

// ErrEmptyTranscript is the hard failure raised when no speech was
// recognized in the whole file.
var ErrEmptyTranscript = errors.New("Transcript is empty. Check the audio track in your file.")

// hardStopMessage is returned instead of generated metadata when the
// upload arrives without link information.
const hardStopMessage = "I can see the uploaded video file.\n" +
	"Have you checked the sheet for uploaded video links?\n" +
	"Please check the reporting sheet. You can find the uploaded video links from the reporting sheet. Use YouTube channel filters. Then copy and paste all the YouTube links from the sheet."

// Transcriber emits recognized speech segments one at a time.
type Transcriber interface {
	TranscribeStream(audioPath string, fn asr.SegmentFunc) error
}

// EngineLoader returns a ready Transcriber. Loading is deferred until
// the first job needs it because model startup is slow.
type EngineLoader func() (Transcriber, error)

// LinkValidator checks a batch of URLs.
type LinkValidator interface {
	Validate(ctx context.Context, urls []string) []links.ValidatedLink
}

// Generator produces the metadata document from a transcript.
type Generator interface {
	Generate(ctx context.Context, transcript, linkMode string, validated []links.ValidatedLink, settings models.Settings) (string, error)
}

// SettingsSource resolves the OpenAI settings in effect at generation time.
type SettingsSource func(ctx context.Context) (models.Settings, error)

// ExtractFunc converts a source media file into a 16kHz mono WAV.
type ExtractFunc func(inputPath, outputPath string) error

// ProbeFunc reports a media file's duration in seconds, 0 when unknown.
type ProbeFunc func(path string) float64

// Runner drives uploaded files through the stages and publishes
// progress to the job store. Each submitted job runs on its own
// goroutine and is the only writer for its record.
type Runner struct {
	store      *jobstore.Store
	settings   SettingsSource
	loadEngine EngineLoader
	extract    ExtractFunc
	probe      ProbeFunc
	validator  LinkValidator
	generator  Generator
}

// NewRunner creates a Runner with the given collaborators.
func NewRunner(store *jobstore.Store, settings SettingsSource, loadEngine EngineLoader, extract ExtractFunc, probe ProbeFunc, validator LinkValidator, generator Generator) *Runner {
	return &Runner{
		store:      store,
		settings:   settings,
		loadEngine: loadEngine,
		extract:    extract,
		probe:      probe,
		validator:  validator,
		generator:  generator,
	}
}

// Submit registers a new job and starts processing it in the
// background. The uploaded file is removed when the job finishes,
// whatever the outcome.
func (r *Runner) Submit(uploadedPath, linkMode, linksText string) string {
	id := r.store.Create()
	r.Start(id, uploadedPath, linkMode, linksText)
	return id
}

// Start begins processing an already registered job.
func (r *Runner) Start(id, uploadedPath, linkMode, linksText string) {
	go r.run(id, uploadedPath, linkMode, linksText)
}

func (r *Runner) run(id, uploadedPath, linkMode, linksText string) {
	defer func() {
		if err := os.Remove(uploadedPath); err != nil && !os.IsNotExist(err) {
			log.Printf("job %s: could not remove upload: %v", id, err)
		}
	}()

	if linkMode == models.LinkModeNotProvided {
		r.hardStop(id)
		return
	}

	if err := r.process(id, uploadedPath, linkMode, linksText); err != nil {
		log.Printf("job %s failed: %v", id, err)
		r.fail(id, err)
	}
}

// hardStop finishes the job immediately with the canned reminder.
func (r *Runner) hardStop(id string) {
	r.update(id, func(j *models.Job) {
		j.Progress = 100
		j.Stage = models.StageHardStop
		j.Done = true
		j.Transcript = ""
		j.Metadata = hardStopMessage
		pass := true
		j.QAPass = &pass
		j.QAIssues = []string{}
	})
}

func (r *Runner) process(id, uploadedPath, linkMode, linksText string) error {
	ctx := context.Background()

	r.progress(id, 5, models.StageExtractingAudio)

	td, err := os.MkdirTemp("", "ftjob")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(td)

	src := filepath.Join(td, "input"+strings.ToLower(filepath.Ext(uploadedPath)))
	if err := copyFile(uploadedPath, src); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}

	wav := filepath.Join(td, "audio.wav")
	if err := r.extract(src, wav); err != nil {
		return err
	}
	dur := r.probe(wav)

	r.progress(id, 15, models.StageLoadingModel)
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	r.progress(id, 20, models.StageTranscribing)
	asm := transcript.NewAssembler(dur)
	lastPct := 20
	err = engine.TranscribeStream(wav, func(seg asr.Segment) error {
		asm.Add(seg.StartTime, seg.EndTime, seg.Text)
		if p := 20 + int(55*asm.Coverage()); p > lastPct {
			lastPct = p
			r.progress(id, p, models.StageTranscribing)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if asm.Empty() {
		return ErrEmptyTranscript
	}
	text := asm.Text()

	r.progress(id, 80, models.StageValidatingLinks)
	urls := links.Parse(linksText)
	var validated []links.ValidatedLink
	if linkMode == models.LinkModeProvided && len(urls) > 0 {
		validated = r.validator.Validate(ctx, urls)
	}

	r.progress(id, 88, models.StageGenerating)
	settings, err := r.settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	metadata, err := r.generator.Generate(ctx, text, linkMode, validated, settings)
	if err != nil {
		return err
	}

	r.progress(id, 96, models.StageQACheck)
	issues := qa.Check(metadata, linkMode, validated)
	if issues == nil {
		issues = []string{}
	}
	pass := len(issues) == 0

	r.update(id, func(j *models.Job) {
		j.Progress = 100
		j.Stage = models.StageDone
		j.Done = true
		j.Transcript = text
		j.Metadata = metadata
		j.QAIssues = issues
		j.QAPass = &pass
	})
	return nil
}

// fail marks the job finished with the error recorded verbatim.
func (r *Runner) fail(id string, err error) {
	msg := err.Error()
	r.update(id, func(j *models.Job) {
		j.Progress = 100
		j.Stage = models.StageError
		j.Done = true
		j.Error = &msg
	})
}

func (r *Runner) progress(id string, pct int, stage string) {
	r.update(id, func(j *models.Job) {
		j.Progress = pct
		j.Stage = stage
	})
}

func (r *Runner) update(id string, fn func(*models.Job)) {
	if err := r.store.Update(id, fn); err != nil {
		log.Printf("job %s: update failed: %v", id, err)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
