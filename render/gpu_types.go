package render

// cameraUniform is the GPU layout of the per-frame camera data at
// group(0) binding(0). Matches the CameraUniform struct in the WGSL shader;
// vec3 fields carry explicit padding to satisfy WGSL alignment rules.
type cameraUniform struct {
	ViewProjection [16]float32
	Position       [3]float32
	_              float32
}

// meshUniform is the GPU layout of the per-draw mesh data at
// group(1) binding(0). Matches the MeshUniform struct in the WGSL shader.
// Color packs the base RGB with the specular intensity in its w component;
// Params carries the shininess exponent in x.
type meshUniform struct {
	Offset [3]float32
	_      float32
	Color  [4]float32
	Params [4]float32
}
