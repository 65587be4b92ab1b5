// Package wgpu implements the postfx Device capability on top of
// gogpu/wgpu HAL compute shaders.
//
// Shader variants are compiled from WGSL to SPIR-V with gogpu/naga and
// cached by full source text, so rebuilding unchanged shaders (engine
// Reload) costs a cache lookup. Textures are represented as packed
// RGBA8 storage buffers with array-layer metadata; a full-screen pass
// is one compute dispatch over 8x8 workgroups, with the VPRT variant
// covering every array layer in a single dispatch.
//
// The device can own its GPU (New brings up the Vulkan backend and
// picks an adapter) or borrow one from the host via a
// gpucontext.DeviceProvider (NewFromProvider), in which case Close
// leaves the shared device alone.
package wgpu
