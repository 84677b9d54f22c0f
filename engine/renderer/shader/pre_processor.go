// pre_processor.go expands @oxy: annotations in WGSL source. Struct definitions
// come from the Go packages that own the matching GPU types, so the shader and
// the byte layout written by Go stay in one place.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/light"
	"github.com/Carmen-Shannon/oxy-spiral/engine/model"
)

// registryEntry pairs an embedded WGSL struct source with its type name.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	declarations         []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces include annotations with struct sources and group
	// annotations with binding declarations. A struct source is injected at most
	// once, however many annotations need it.
	//
	// Parameters:
	//   - source: WGSL with annotations
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations of the last Process call in source order.
	Declarations() []Annotation

	// BindGroupCount returns one past the highest group index declared by the
	// last Process call, or 0 when nothing was declared.
	BindGroupCount() int
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a pre-processor knowing the camera, lights, vertex and instance structs.
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:   {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLights:   {Source: light.GPULightsSource, Type: "Lights"},
			annotationArgVertex:   {Source: model.GPUVertexSource, Type: "VertexInput"},
			AnnotationArgInstance: {Source: model.GPUVertexSource, Type: "InstanceData"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = nil
	included := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry := p.structRegistry[a.Args[0]]
			if !included[entry.Source] {
				included[entry.Source] = true
				out = append(out, entry.Source)
			}
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			elem, isArray := arrayElem(string(a.Args[2]))
			wgslType := p.structRegistry[AnnotationArg(elem)].Type
			if isArray {
				wgslType = fmt.Sprintf("array<%s>", wgslType)
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], wgslType))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) BindGroupCount() int {
	n := 0
	for _, d := range p.declarations {
		if *d.Group+1 > n {
			n = *d.Group + 1
		}
	}
	return n
}
