// Package cache provides a keyed cache for GPU resources.
//
// Values are created on first use and handed to a release callback when the
// cache is cleared, so the cache can own objects that must be destroyed
// explicitly and are shared by many users (samplers):
//
//	samplers := cache.New[gputypes.FilterMode, hal.Sampler](device.DestroySampler)
//	s, err := samplers.GetOrCreate(gputypes.FilterModeLinear, func() (hal.Sampler, error) {
//		return device.CreateSampler(desc)
//	})
//
// There is no size limit. A value may only be destroyed once no texture
// refers to it, which the cache cannot know, so entries stay until Clear.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
