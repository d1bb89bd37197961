package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/chenBenjamin97/player-tracker/pkg/metrics"
	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"github.com/chenBenjamin97/player-tracker/pkg/utils"
	"github.com/chenBenjamin97/player-tracker/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

//ProcessFunc runs the tracking pipeline, replaced in tests
type ProcessFunc func(videoPath string, kps tracking.CourtKeypoints, opts video.Options) (*video.Result, error)

func SetRouter(m *metrics.Metrics) *gin.Engine {
	return newRouter(m, runPipeline)
}

func newRouter(m *metrics.Metrics, process ProcessFunc) *gin.Engine {
	r := gin.Default()

	r.GET("/metrics", gin.WrapH(m.Handler()))

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Request.URL.Query().Get("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) //missing url parameter
			return
		}

		videoPath := path.Join(viper.GetString("directory.ready"), path.Base(videoName)+"."+viper.GetString("video.prod_format"))
		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
			} else {
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.Header("Content-Type", "video/mp4")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	apiRoutes.POST("/ProcessVideo", func(ctx *gin.Context) {
		maxSize := viper.GetInt64("http.max_upload_size")
		if maxSize <= 0 {
			maxSize = utils.MaxUploadSize
		}
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxSize)

		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Video file is larger than " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes"})
				return
			}
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
			return
		}
		defer file.Close()

		if fHeader.Filename == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
			return
		}

		allowed := viper.GetStringSlice("video.allowed_extensions")
		if len(allowed) == 0 {
			allowed = utils.AllowedVideoExtensions
		}
		if !utils.AllowedVideoFile(fHeader.Filename, allowed) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}

		playerOneHeight, err := formFloat(ctx, "player_1_height", configFloat("players.default_height_1", utils.DefaultPlayerOneHeight))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		playerTwoHeight, err := formFloat(ctx, "player_2_height", configFloat("players.default_height_2", utils.DefaultPlayerTwoHeight))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		kps, err := tracking.ParseCourtKeypoints(ctx.PostForm("court_keypoints"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log.Printf("api/ProcessVideo: Received new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		videoName := path.Base(fHeader.Filename)
		srcFilePath := path.Join(viper.GetString("directory.source"), videoName)
		if err := saveUpload(file, srcFilePath); err != nil {
			if errors.Is(err, os.ErrExist) {
				//another run still owns this name, its input and cache location stay untouched
				ctx.JSON(http.StatusNotAcceptable, gin.H{"error": "Video '" + videoName + "' is already being processed"})
				return
			}
			log.Printf("api/ProcessVideo: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "trace": errorTrace(err)})
			return
		}
		defer os.Remove(srcFilePath) //uploaded file is only needed while processing

		outputName := videoName[:len(videoName)-len(path.Ext(videoName))] + "." + viper.GetString("video.prod_format")
		opts, err := video.ConfiguredOptions(path.Join(viper.GetString("directory.ready"), outputName))
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "trace": errorTrace(err)})
			return
		}
		opts.Metrics = m

		res, err := process(srcFilePath, kps, opts)
		if err != nil {
			log.Printf("api/ProcessVideo: Error processing '%s', got '%v'", videoName, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "trace": errorTrace(err)})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message":           "Video processed successfully",
			"roles":             res.Mapping,
			"player_detections": res.Detections,
			"player_heights": map[tracking.Role]float64{
				tracking.PlayerOne: playerOneHeight,
				tracking.PlayerTwo: playerTwoHeight,
			},
			"output": path.Base(res.OutputPath),
		})
	})

	return r
}

//runPipeline starts the configured tracker and cache for one video and runs the pipeline
func runPipeline(videoPath string, kps tracking.CourtKeypoints, opts video.Options) (*video.Result, error) {
	store, release, err := video.OpenConfiguredStore(videoPath)
	if err != nil {
		return nil, err
	}
	defer release()
	opts.Store = store

	tracker, err := video.StartConfiguredTracker()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			log.Printf("runPipeline: %v", err)
		}
	}()
	opts.Tracker = tracker

	return video.Process(videoPath, kps, opts)
}

func formFloat(ctx *gin.Context, name string, def float64) (float64, error) {
	v := ctx.PostForm(name)
	if v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return f, nil
}

//configFloat reads key from configuration, def when the key is not set
func configFloat(key string, def float64) float64 {
	if !viper.IsSet(key) {
		return def
	}

	return viper.GetFloat64(key)
}

//saveUpload writes the upload to dst, failing with os.ErrExist when dst is already there
func saveUpload(file io.Reader, dst string) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}

//errorTrace lists the wrapped error chain, outermost first
func errorTrace(err error) []string {
	trace := make([]string, 0)
	for ; err != nil; err = errors.Unwrap(err) {
		trace = append(trace, err.Error())
	}

	return trace
}
