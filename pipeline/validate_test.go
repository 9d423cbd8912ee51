package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamml/streamml/errdefs"
	"github.com/streamml/streamml/frameworks"
)

func writeModelFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("model-bytes"), 0o600))
	return path
}

func allAvailable() map[frameworks.ID]bool {
	available := make(map[frameworks.ID]bool)
	for id := frameworks.CustomFilter; id <= frameworks.SNAP; id++ {
		available[id] = true
	}
	return available
}

func TestValidateModelBadPaths(t *testing.T) {
	eng := &fakeEngine{available: allAvailable()}

	_, err := ValidateModel(eng, nil, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)

	_, err = ValidateModel(eng, []string{""}, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)

	_, err = ValidateModel(eng, []string{"/no/such/model.tflite"}, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)

	_, err = ValidateModel(nil, []string{"x"}, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestValidateModelAutoDetection(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: allAvailable()}
	path := writeModelFile(t, "mobilenet.tflite")

	resolved, err := ValidateModel(eng, []string{path}, frameworks.Any)
	require.NoError(t, err)
	require.Equal(t, frameworks.TensorFlowLite, resolved)

	// Detection is idempotent over an unchanged path set.
	again, err := ValidateModel(eng, []string{path}, frameworks.Any)
	require.NoError(t, err)
	require.Equal(t, resolved, again)
}

func TestValidateModelUnknownExtension(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: allAvailable()}
	path := writeModelFile(t, "weights.xyz")

	_, err := ValidateModel(eng, []string{path}, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestValidateModelDirectoryExclusivity(t *testing.T) {
	dir := t.TempDir()
	eng := &fakeEngine{
		detect:    func([]string) string { return "nnfw" },
		available: allAvailable(),
	}

	// Only NNFW takes directory-based models, whatever detection says.
	_, err := ValidateModel(eng, []string{dir}, frameworks.TensorFlowLite)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)

	resolved, err := ValidateModel(eng, []string{dir}, frameworks.NNFW)
	require.NoError(t, err)
	require.Equal(t, frameworks.NNFW, resolved)
}

func TestValidateModelMatchSkipsExtensionRules(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: allAvailable()}
	path := writeModelFile(t, "net.tflite")

	resolved, err := ValidateModel(eng, []string{path}, frameworks.TensorFlowLite)
	require.NoError(t, err)
	require.Equal(t, frameworks.TensorFlowLite, resolved)
}

func TestValidateModelVendorExtensionGate(t *testing.T) {
	eng := &fakeEngine{available: allAvailable()}

	_, err := ValidateModel(eng,
		[]string{writeModelFile(t, "model.onnx")}, frameworks.VendorAIFW)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)

	resolved, err := ValidateModel(eng,
		[]string{writeModelFile(t, "model.bin")}, frameworks.VendorAIFW)
	require.NoError(t, err)
	require.Equal(t, frameworks.VendorAIFW, resolved)
}

func TestValidateModelArmNNExtensionGate(t *testing.T) {
	eng := &fakeEngine{available: allAvailable()}

	resolved, err := ValidateModel(eng,
		[]string{writeModelFile(t, "net.caffemodel")}, frameworks.ArmNN)
	require.NoError(t, err)
	require.Equal(t, frameworks.ArmNN, resolved)

	_, err = ValidateModel(eng,
		[]string{writeModelFile(t, "net.onnx")}, frameworks.ArmNN)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestValidateModelNotYetValidatedFrameworks(t *testing.T) {
	eng := &fakeEngine{available: allAvailable()}
	path := writeModelFile(t, "graph.xml")

	for _, id := range []frameworks.ID{
		frameworks.MovidiusNCSDK2, frameworks.OpenVINO, frameworks.EdgeTPU,
	} {
		_, err := ValidateModel(eng, []string{path}, id)
		require.ErrorIs(t, err, errdefs.ErrNotSupported, "framework %s", id.Name())
	}
}

func TestValidateModelSNAPOutsideAndroid(t *testing.T) {
	if frameworks.SNAPSupported() {
		t.Skip("SNAP is supported on this build")
	}
	eng := &fakeEngine{available: allAvailable()}
	path := writeModelFile(t, "model.dlc")

	_, err := ValidateModel(eng, []string{path}, frameworks.SNAP)
	require.ErrorIs(t, err, errdefs.ErrNotSupported)
}

func TestValidateModelMissingExtension(t *testing.T) {
	eng := &fakeEngine{available: allAvailable()}
	path := writeModelFile(t, "modelfile")

	_, err := ValidateModel(eng, []string{path}, frameworks.PyTorch)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestValidateModelMismatchedDefault(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: allAvailable()}
	path := writeModelFile(t, "net.tflite")

	// PyTorch has no rule accepting .tflite: the deliberate override path
	// still rejects it.
	_, err := ValidateModel(eng, []string{path}, frameworks.PyTorch)
	require.ErrorIs(t, err, errdefs.ErrInvalidParameter)
}

func TestValidateModelAvailabilityGate(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: map[frameworks.ID]bool{}}
	path := writeModelFile(t, "net.tflite")

	_, err := ValidateModel(eng, []string{path}, frameworks.TensorFlowLite)
	require.ErrorIs(t, err, errdefs.ErrNotSupported)

	_, err = ValidateModel(eng, []string{path}, frameworks.Any)
	require.ErrorIs(t, err, errdefs.ErrNotSupported)
}

func TestValidateModelMultipleFiles(t *testing.T) {
	eng := &fakeEngine{detect: detectByExtension, available: allAvailable()}
	dir := t.TempDir()
	p1 := filepath.Join(dir, "model.prototxt")
	p2 := filepath.Join(dir, "weights.caffemodel")
	require.NoError(t, os.WriteFile(p1, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(p2, []byte("b"), 0o600))

	resolved, err := ValidateModel(eng, []string{p1, p2}, frameworks.ArmNN)
	require.NoError(t, err)
	require.Equal(t, frameworks.ArmNN, resolved)
}
