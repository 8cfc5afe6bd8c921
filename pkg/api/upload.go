package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/gin-gonic/gin"
)

//multipartOverhead is what the form around the video may add to the body
const multipartOverhead = 1 << 20

//stageUpload copies the request's 'video' file into the temp directory.
//Returns the staged path, or an HTTP status and an error describing why the upload was refused.
func (s *Server) stageUpload(ctx *gin.Context) (string, int, error) {
	if s.opts.MaxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, s.opts.MaxUploadBytes+multipartOverhead)
	}

	file, fHeader, err := ctx.Request.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusRequestEntityTooLarge, s.tooLarge()
		}
		return "", http.StatusBadRequest, errors.New("No video file provided")
	}
	defer file.Close()

	if s.opts.MaxUploadBytes > 0 && fHeader.Size > s.opts.MaxUploadBytes {
		return "", http.StatusRequestEntityTooLarge, s.tooLarge()
	}
	utils.Logf("api/Upload: Received new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

	ext := strings.ToLower(filepath.Ext(fHeader.Filename))
	staged, err := os.CreateTemp(s.opts.TempDir, utils.UploadPrefix+"*"+ext)
	if err != nil {
		utils.Logf("api/Upload: Could not create staging file, got '%v'", err)
		return "", http.StatusInternalServerError, errors.New("Could not stage upload")
	}

	if _, err := io.Copy(staged, file); err != nil {
		staged.Close()
		removeStaged(staged.Name())
		utils.Logf("api/Upload: Could not write '%s' file, got '%v'", staged.Name(), err)
		return "", http.StatusInternalServerError, errors.New("Could not stage upload")
	}
	if err := staged.Close(); err != nil {
		removeStaged(staged.Name())
		return "", http.StatusInternalServerError, errors.New("Could not stage upload")
	}

	return staged.Name(), http.StatusOK, nil
}

func (s *Server) tooLarge() error {
	return fmt.Errorf("Video exceeds the %d MB upload limit", s.opts.MaxUploadBytes>>20)
}

func removeStaged(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		utils.Logf("api: Could not remove staged upload '%s', got '%v'", path, err)
	}
}

//SweepStaleUploads removes staged uploads a previous process left behind
func SweepStaleUploads(tempDir string) {
	removed, err := utils.SweepDir(tempDir, utils.UploadPrefix, utils.StaleUploadAge)
	if err != nil {
		utils.Logf("SweepStaleUploads: Error, got '%v'", err)
		return
	}
	if len(removed) > 0 {
		utils.Logf("SweepStaleUploads: Removed %d stale uploads from '%s'", len(removed), tempDir)
	}
}
