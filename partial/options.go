package partial

// OrchestratorOption configures a FrameOrchestrator during creation.
type OrchestratorOption func(*orchestratorOptions)

type orchestratorOptions struct {
	supportsTransformations bool
}

func defaultOrchestratorOptions() orchestratorOptions {
	return orchestratorOptions{supportsTransformations: false}
}

// WithTransformSupport declares that the backend supports full affine
// child transforms: CachedGeometry records with Kind GeometryWithTransform
// may be produced for items with a children transform, instead of always
// falling back to translation-only geometry.
func WithTransformSupport(supported bool) OrchestratorOption {
	return func(o *orchestratorOptions) {
		o.supportsTransformations = supported
	}
}
