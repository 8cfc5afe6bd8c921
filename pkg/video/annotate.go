package video

import (
	"fmt"
	"os"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"gocv.io/x/gocv"
)

//AnnotatedCodec is the writer's fourcc, XVID (== MPEG-4 codec) video in an '.avi' container
const AnnotatedCodec = "XVID"

//Annotator plots every analyzed frame and writes it to an output video.
//It implements analysis.FrameObserver.
type Annotator struct {
	path    string
	jersey  string
	writer  *gocv.VideoWriter
	written int
}

//NewAnnotator creates the output video at given path with the source's frame rate and size
func NewAnnotator(path string, jersey string, fps float64, width, height int) (*Annotator, error) {
	if fps <= 0 {
		fps = analysis.DefaultFPS
	}

	writer, err := gocv.VideoWriterFile(path, AnnotatedCodec, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("NewAnnotator: Error creating '%s', got '%v'", path, err)
	}

	return &Annotator{path: path, jersey: jersey, writer: writer}, nil
}

//ObserveFrame draws given result over its frame and appends the frame to the output
func (a *Annotator) ObserveFrame(result analysis.FrameResult) {
	f, ok := result.Frame.(*Frame)
	if !ok || f.Mat == nil || f.Mat.Empty() {
		return
	}

	if result.Player != nil {
		plotPlayerOnFrame(f.Mat, *result.Player, result.SpeedKmh, a.jersey)
	}
	if result.Ball != nil {
		plotBallOnFrame(f.Mat, *result.Ball, result.Possession)
	}
	plotStatsOnFrame(f.Mat, result.Stats, result.Events)

	if err := a.writer.Write(*f.Mat); err != nil {
		utils.Logf("Annotator: Error writing frame %d to '%s', got '%v'", result.Index, a.path, err)
		return
	}
	a.written++
}

//Written returns the number of frames written so far
func (a *Annotator) Written() int {
	return a.written
}

//Close finalizes the output video. An output without frames is removed.
func (a *Annotator) Close() error {
	err := a.writer.Close()
	if a.written == 0 {
		os.Remove(a.path)
	}
	return err
}
