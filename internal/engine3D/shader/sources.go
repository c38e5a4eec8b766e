package shader

// The ghost vertex shader receives world-space positions (meshes are
// transformed on the CPU) so the fragment stage can clip against the ground.
const ghostVertex = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
out vec3 worldPos;

void main() {
    worldPos = vertexPosition;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// clipPrelude discards fragments below the ground or outside the vision
// window. gl_FragCoord has a bottom-left origin, the window a top-left one.
const clipPrelude = `#version 330
in vec3 worldPos;
uniform vec2 windowCenter;
uniform vec2 windowSize;
uniform vec2 screenSize;
uniform float groundLevel;
out vec4 finalColor;

void clipToWindow() {
    if (worldPos.y < groundLevel) discard;
    vec2 pixel = vec2(gl_FragCoord.x, screenSize.y - gl_FragCoord.y);
    vec2 d = abs(pixel - windowCenter);
    if (d.x > windowSize.x * 0.5 || d.y > windowSize.y * 0.5) discard;
}
`

const glowFragment = clipPrelude + `
uniform vec3 emissive;
uniform float intensity;
uniform float alpha;

void main() {
    clipToWindow();
    finalColor = vec4(emissive * intensity, alpha * intensity);
}
`

const outlineFragment = clipPrelude + `
uniform vec3 lineColor;
uniform float opacity;

void main() {
    clipToWindow();
    finalColor = vec4(lineColor, opacity);
}
`
