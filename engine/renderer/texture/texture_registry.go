// Package texture manages the tagged set of GPU textures a scene samples from.
// Each texture occupies the slot given by its registration order, and slot i is bound to texture unit i.
package texture

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-monument/common"
)

// DefaultCapacity is the number of texture units available to the scene shader.
const DefaultCapacity = 16

// Device is the renderer surface the registry needs: texture creation, unit binding and release.
type Device interface {
	CreateTexture(data common.TextureStagingData, sampler common.SamplerStagingData) (common.TextureHandle, error)
	BindTextureUnit(unit int, handle common.TextureHandle) error
	ReleaseTexture(handle common.TextureHandle)
}

// Decoder turns an image file into packed pixels. Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(path string) (common.DecodedImage, error)
}

// Entry is one registered texture.
type Entry struct {
	Tag    string
	Handle common.TextureHandle
}

// Spec names an image file and the tag it is registered under.
type Spec struct {
	Path string
	Tag  string
}

// registry is the implementation of the Registry interface.
type registry struct {
	device   Device
	decoder  Decoder
	sampler  common.SamplerStagingData
	capacity int
	mipmaps  bool
	workers  int
	pool     worker.DynamicWorkerPool
	entries  []Entry
}

// Registry is an ordered, capacity-bounded collection of tagged textures.
// Slot indices are assigned in load order and never change until Teardown.
type Registry interface {
	// Load decodes the image at path, uploads it to the GPU and registers it under tag in the next free slot.
	// The registry is left unchanged on any failure.
	//
	// Parameters:
	//   - path: the image file path
	//   - tag: the lookup tag
	//
	// Returns:
	//   - error: wraps ErrCapacityExceeded, ErrDuplicateTag, ErrDecodeFailure, ErrUnsupportedChannelFormat,
	//     or the renderer's upload error
	Load(path, tag string) error

	// LoadAll decodes the specs concurrently, never more new tags than there are free slots, then
	// registers the results in the given order so that slot indices follow the order of specs. The resulting registry and errors match calling Load for
	// each spec in turn; a failing spec does not prevent the others from loading.
	//
	// Parameters:
	//   - specs: the textures to load
	//
	// Returns:
	//   - error: the joined per-texture errors, or nil
	LoadAll(specs []Spec) error

	// BindAll binds each registered texture to the texture unit matching its slot.
	// Call once after loading and before the first draw.
	//
	// Returns:
	//   - error: the joined bind errors, or nil
	BindAll() error

	// Slot finds the slot of the first texture registered under tag.
	//
	// Parameters:
	//   - tag: the lookup tag
	//
	// Returns:
	//   - int: the slot index, or NotFound
	//   - bool: true if the tag is registered
	Slot(tag string) (int, bool)

	// SlotOrSentinel returns the slot of tag, or NotFound (-1) if the tag is not registered.
	//
	// Parameters:
	//   - tag: the lookup tag
	//
	// Returns:
	//   - int: the slot index or NotFound
	SlotOrSentinel(tag string) int

	// Handle finds the GPU texture handle registered under tag.
	//
	// Parameters:
	//   - tag: the lookup tag
	//
	// Returns:
	//   - common.TextureHandle: the handle, or common.InvalidTextureHandle
	//   - bool: true if the tag is registered
	Handle(tag string) (common.TextureHandle, bool)

	// Teardown releases every registered GPU texture and empties the registry. Safe to call repeatedly.
	Teardown()

	// Len returns the number of registered textures.
	Len() int

	// Capacity returns the maximum number of textures the registry holds.
	Capacity() int

	// Entries returns a copy of the registered textures in slot order.
	Entries() []Entry
}

var _ Registry = &registry{}

// NewRegistry creates a texture registry that uploads through device.
// Panics if device is nil.
//
// Parameters:
//   - device: the renderer that creates, binds and releases textures
//   - options: functional options
//
// Returns:
//   - Registry: the registry
func NewRegistry(device Device, options ...RegistryBuilderOption) Registry {
	if device == nil {
		panic("texture: NewRegistry requires a non-nil Device")
	}

	r := &registry{
		device:   device,
		decoder:  common.NewImageDecoder(),
		sampler:  common.RepeatLinearSampler(),
		capacity: DefaultCapacity,
		mipmaps:  true,
		workers:  4,
	}

	for _, option := range options {
		option(r)
	}

	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	return r
}

func (r *registry) Load(path, tag string) error {
	if err := r.admit(tag); err != nil {
		log.Printf("[Texture] cannot load %s as %q: %v", path, tag, err)
		return err
	}

	img, err := r.decode(path)
	if err != nil {
		log.Printf("[Texture] cannot load %s as %q: %v", path, tag, err)
		return err
	}

	return r.register(img, tag)
}

func (r *registry) LoadAll(specs []Spec) error {
	type result struct {
		img common.DecodedImage
		err error
	}
	results := make([]result, len(specs))

	// Decode ahead only as many new tags as there are free slots. Specs left out are decoded
	// during registration if a failure earlier in the batch freed their slot.
	submitted := make([]bool, len(specs))
	seen := make(map[string]bool, len(specs))
	free := r.capacity - len(r.entries)

	var wg sync.WaitGroup
	for i, spec := range specs {
		if free <= 0 {
			break
		}
		if r.hasTag(spec.Tag) || seen[spec.Tag] {
			continue
		}
		seen[spec.Tag] = true
		submitted[i] = true
		free--

		wg.Add(1)
		idx, path := i, spec.Path
		r.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx].img, results[idx].err = r.decode(path)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var errs []error
	for i, spec := range specs {
		err := r.admit(spec.Tag)
		if err == nil && !submitted[i] {
			results[i].img, results[i].err = r.decode(spec.Path)
		}
		if err == nil {
			err = results[i].err
		}
		if err != nil {
			log.Printf("[Texture] cannot load %s as %q: %v", spec.Path, spec.Tag, err)
			errs = append(errs, err)
			continue
		}
		if err := r.register(results[i].img, spec.Tag); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *registry) BindAll() error {
	var errs []error
	for slot, entry := range r.entries {
		if err := r.device.BindTextureUnit(slot, entry.Handle); err != nil {
			log.Printf("[Texture] failed to bind %q to unit %d: %v", entry.Tag, slot, err)
			errs = append(errs, fmt.Errorf("bind %q to unit %d: %w", entry.Tag, slot, err))
		}
	}
	return errors.Join(errs...)
}

func (r *registry) Slot(tag string) (int, bool) {
	for i, entry := range r.entries {
		if entry.Tag == tag {
			return i, true
		}
	}
	return NotFound, false
}

func (r *registry) SlotOrSentinel(tag string) int {
	slot, _ := r.Slot(tag)
	return slot
}

func (r *registry) Handle(tag string) (common.TextureHandle, bool) {
	slot, ok := r.Slot(tag)
	if !ok {
		return common.InvalidTextureHandle, false
	}
	return r.entries[slot].Handle, true
}

func (r *registry) Teardown() {
	for _, entry := range r.entries {
		r.device.ReleaseTexture(entry.Handle)
	}
	r.entries = nil
}

func (r *registry) Len() int {
	return len(r.entries)
}

func (r *registry) Capacity() int {
	return r.capacity
}

func (r *registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// admit checks that tag can take a new slot.
func (r *registry) admit(tag string) error {
	if len(r.entries) >= r.capacity {
		return fmt.Errorf("%w: %d slots in use", ErrCapacityExceeded, r.capacity)
	}
	if r.hasTag(tag) {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	return nil
}

func (r *registry) hasTag(tag string) bool {
	_, ok := r.Slot(tag)
	return ok
}

// decode reads the image and checks it carries 3 or 4 channels.
func (r *registry) decode(path string) (common.DecodedImage, error) {
	img, err := r.decoder.Decode(path)
	if err != nil {
		return common.DecodedImage{}, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	if img.Channels != 3 && img.Channels != 4 {
		return common.DecodedImage{}, fmt.Errorf("%w: %s has %d channels", ErrUnsupportedChannelFormat, path, img.Channels)
	}
	return img, nil
}

// register uploads a decoded image and appends it at the next slot. The caller has already admitted tag.
func (r *registry) register(img common.DecodedImage, tag string) error {
	handle, err := r.device.CreateTexture(common.TextureStagingData{
		Label:           tag,
		Pixels:          img.Pixels,
		Width:           uint32(img.Width),
		Height:          uint32(img.Height),
		Channels:        img.Channels,
		GenerateMipmaps: r.mipmaps,
	}, r.sampler)
	if err != nil {
		log.Printf("[Texture] failed to upload %q: %v", tag, err)
		return fmt.Errorf("upload texture %q: %w", tag, err)
	}

	r.entries = append(r.entries, Entry{Tag: tag, Handle: handle})
	log.Printf("[Texture] registered %q at slot %d (%dx%d, %d channels)", tag, len(r.entries)-1, img.Width, img.Height, img.Channels)
	return nil
}
