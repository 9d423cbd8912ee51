package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/streamml/streamml/errdefs"
	"github.com/streamml/streamml/frameworks"
)

// checkModelPaths rejects empty path sets and missing or irregular files.
// When the first path is a directory the remaining per-file checks are
// skipped: directory-based models are handed whole to the owning framework's
// own validator.
func checkModelPaths(paths []string) (isDir bool, err error) {
	if len(paths) == 0 {
		klog.Errorf("The required param, model is not provided (empty).")
		return false, errors.Wrap(errdefs.ErrInvalidParameter, "no model path given")
	}

	if fi, serr := os.Stat(paths[0]); serr == nil && fi.IsDir() {
		return true, nil
	}

	for _, p := range paths {
		if p == "" {
			klog.Errorf("The given param, model path is empty.")
			return false, errors.Wrap(errdefs.ErrInvalidParameter, "empty model path given")
		}
		fi, serr := os.Stat(p)
		if serr != nil || !fi.Mode().IsRegular() {
			klog.Errorf("The given param, model path [%s] is invalid or not given.", p)
			return false, errors.Wrapf(errdefs.ErrInvalidParameter,
				"model path %q is not a regular file", p)
		}
		if klog.V(1).Enabled() {
			klog.V(1).Infof("Model file %s (%s)", p, humanize.Bytes(uint64(fi.Size())))
		}
	}
	return false, nil
}

// validateExtensions applies the per-framework extension rules on the
// mismatch/inconclusive path of ValidateModel. Reaching it means detection
// and the requested framework disagree, so the file extensions are the only
// evidence left.
func validateExtensions(paths []string, requested frameworks.ID) error {
	exts := make([]string, len(paths))
	for i, p := range paths {
		ext := filepath.Ext(p)
		if ext == "" {
			klog.Errorf("The given model [%s] has invalid extension.", p)
			return errors.Wrapf(errdefs.ErrInvalidParameter,
				"model path %q has no extension", p)
		}
		exts[i] = strings.ToLower(ext)
	}

	switch requested {
	case frameworks.NNFW:
		// No extension contract: NNFW itself validates metadata and model
		// files.
	case frameworks.MovidiusNCSDK2, frameworks.OpenVINO, frameworks.EdgeTPU:
		klog.Errorf("Given framework %s is not supported yet.", requested.Name())
		return errors.Wrapf(errdefs.ErrNotSupported,
			"model validation for %s is not implemented", requested.Name())
	case frameworks.VendorAIFW:
		switch exts[0] {
		case ".nb", ".ncp", ".bin":
		default:
			return errors.Wrapf(errdefs.ErrInvalidParameter,
				"extension %q is not accepted by %s", exts[0], requested.Name())
		}
	case frameworks.SNAP:
		if !frameworks.SNAPSupported() {
			klog.Errorf("SNAP only can be included in Android (arm64-v8a only).")
			return errors.Wrap(errdefs.ErrNotSupported, "SNAP requires an Android build")
		}
		// SNAP spans multiple files; existing model files are enough.
	case frameworks.ArmNN:
		switch exts[0] {
		case ".caffemodel", ".tflite", ".pb", ".prototxt":
		default:
			return errors.Wrapf(errdefs.ErrInvalidParameter,
				"extension %q is not accepted by %s", exts[0], requested.Name())
		}
	default:
		return errors.Wrapf(errdefs.ErrInvalidParameter,
			"model extension %q does not match framework %s", exts[0], requested.Name())
	}
	return nil
}

// ValidateModel checks the given model paths against the requested framework
// and returns the resolved framework that should load them.
//
// With requested set to frameworks.Any the framework is auto-detected from
// the paths; otherwise detection is used to corroborate the request, and on
// disagreement the per-framework extension rules decide. A mismatched
// request is deliberately re-validated through the extension rules rather
// than rejected outright, so callers may override detection on purpose.
//
// The resolved framework must additionally be available in the running
// process, else the call fails wrapping errdefs.ErrNotSupported. Every
// failure is derived from (paths, requested) alone; no state is kept across
// calls.
func ValidateModel(eng Engine, paths []string, requested frameworks.ID) (frameworks.ID, error) {
	if eng == nil {
		return frameworks.Any, errors.Wrap(errdefs.ErrInvalidParameter, "nil engine given")
	}

	isDir, err := checkModelPaths(paths)
	if err != nil {
		return frameworks.Any, err
	}

	// Detection checks the file extensions and returns the proper framework
	// name for the given models. When it agrees with the request, the
	// extension rules below are skipped.
	detected := frameworks.FromName(eng.DetectFramework(paths, true))

	resolved := requested
	switch {
	case requested == frameworks.Any:
		if detected == frameworks.Any {
			klog.Errorf("The given model has unknown or not supported extension.")
			return frameworks.Any, errors.Wrap(errdefs.ErrInvalidParameter,
				"the model has an unknown or unsupported extension")
		}
		klog.V(1).Infof("The given model is supposed a %s model.", detected.Name())
		resolved = detected
	case isDir && requested != frameworks.NNFW:
		// NNFW is the only framework taking a directory-based model.
		klog.Errorf("The given model is directory, check model and framework.")
		return frameworks.Any, errors.Wrapf(errdefs.ErrInvalidParameter,
			"framework %s does not take a directory-based model", requested.Name())
	case detected == requested:
		// Expected framework, nothing to do.
	default:
		if err := validateExtensions(paths, requested); err != nil {
			klog.Errorf("The given model file is invalid.")
			return frameworks.Any, err
		}
	}

	if !eng.FrameworkAvailable(resolved, frameworks.HWAny.Accel()) {
		klog.Errorf("%s is not available.", resolved.Name())
		return frameworks.Any, errors.Wrapf(errdefs.ErrNotSupported,
			"framework %s is not available in this process", resolved.Name())
	}
	return resolved, nil
}
