package render

// meshShaderSource is the single render pipeline's WGSL source. One vertex
// stream (position + normal), a per-frame camera uniform at group 0 and a
// per-draw mesh uniform at group 1. Shading is a headlight Blinn-Phong:
// the light direction rides with the camera so anatomy is always lit from
// the viewer's side. Faces are shaded double-sided by flipping the normal
// on back faces.
const meshShaderSource = `
struct CameraUniform {
    view_projection: mat4x4<f32>,
    position: vec3<f32>,
};

struct MeshUniform {
    offset: vec3<f32>,
    color: vec4<f32>,
    params: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> mesh: MeshUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_position: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let world = in.position + mesh.offset;
    out.clip_position = camera.view_projection * vec4<f32>(world, 1.0);
    out.world_position = world;
    out.normal = in.normal;
    return out;
}

@fragment
fn fs_main(in: VertexOutput, @builtin(front_facing) front_facing: bool) -> @location(0) vec4<f32> {
    let view_dir = normalize(camera.position - in.world_position);

    // Degenerate geometry can carry zero normals; fall back to facing the viewer.
    let n_len = length(in.normal);
    var n = select(view_dir, in.normal / max(n_len, 1e-5), n_len > 1e-5);
    if (!front_facing) {
        n = -n;
    }

    let light_dir = view_dir;
    let ambient = 0.25;
    let diffuse = max(dot(n, light_dir), 0.0) * 0.75;
    let half_dir = normalize(light_dir + view_dir);
    let specular = pow(max(dot(n, half_dir), 0.0), mesh.params.x) * mesh.color.w;

    let shaded = mesh.color.rgb * (ambient + diffuse) + vec3<f32>(specular);
    return vec4<f32>(shaded, 1.0);
}
`
