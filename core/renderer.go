// Copyright (c) 2026 glimmer authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"

	"github.com/glimmergfx/glimmer/device"
)

// NewVulkanRenderer creates a not yet initialised Vulkan API renderer.
// The instance must already carry the window surface; the surface is
// shared with the window and must not outlive it.
func NewVulkanRenderer(instance Instance, cfg RendererConfiguration) (Renderer, error) {
	if len(instance.AvailableDevices()) == 0 {
		return nil, device.ErrNoSuitableDevice
	}
	return &VulkanRenderer{
		configuration:    cfg,
		surface:          instance.Surface(),
		availableDevices: instance.AvailableDevices(),
	}, nil
}

// VulkanRenderer is a Vulkan API renderer. It owns the logical device,
// the queue and every swapchain-derived resource. All methods are meant
// to be called from the single event dispatch goroutine.
type VulkanRenderer struct {
	configuration RendererConfiguration

	surface          vk.Surface
	availableDevices []vk.PhysicalDevice

	physicalDevice   vk.PhysicalDevice
	logicalDevice    vk.Device
	deviceQueue      vk.Queue
	queueFamilyIndex uint32

	surfaceConfig SurfaceConfiguration

	swapchain           vk.Swapchain
	swapchainImages     []vk.Image
	swapchainImageViews []vk.ImageView
	framebuffers        []vk.Framebuffer

	renderPass     vk.RenderPass
	commandPool    vk.CommandPool
	commandBuffers []vk.CommandBuffer

	imageAvailableSemaphore vk.Semaphore
	renderFinishedSemaphore vk.Semaphore
	imageIndex              uint32

	ready bool
}

// Initialise implements interface
func (v *VulkanRenderer) Initialise() error {
	/* Device and queue */
	physicalDevice, queueFamilyIndex, err := device.Select(v.availableDevices, v.surface)
	if err != nil {
		return err
	}
	v.physicalDevice = physicalDevice
	v.queueFamilyIndex = queueFamilyIndex

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: v.queueFamilyIndex,
		QueueCount:       1,
		PQueuePriorities: []float32{1},
	}}

	requiredExtensions := safeStrings([]string{
		"VK_KHR_swapchain",
	})

	var logicalDevice vk.Device
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: requiredExtensions,
	}
	if err := vk.Error(vk.CreateDevice(v.physicalDevice, &dci, nil, &logicalDevice)); err != nil {
		return fmt.Errorf("%w: vk.CreateDevice(): %s", ErrDeviceCreation, err.Error())
	}
	v.logicalDevice = logicalDevice

	var deviceQueue vk.Queue
	vk.GetDeviceQueue(v.logicalDevice, v.queueFamilyIndex, 0, &deviceQueue)
	v.deviceQueue = deviceQueue

	/* Surface format */
	var surfaceFormatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.physicalDevice, v.surface, &surfaceFormatCount, nil)); err != nil {
		return errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	surfaceFormats := make([]vk.SurfaceFormat, surfaceFormatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.physicalDevice, v.surface, &surfaceFormatCount, surfaceFormats)); err != nil {
		return errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	for i := range surfaceFormats {
		surfaceFormats[i].Deref()
	}
	format, colorSpace := ChooseSurfaceFormat(surfaceFormats)

	/* Surface capabilities and initial extent */
	capabilities, err := v.surfaceCapabilities()
	if err != nil {
		return err
	}

	width, height := capabilities.CurrentExtent.Width, capabilities.CurrentExtent.Height
	if width == undefinedExtent || height == undefinedExtent {
		// window manager defers the choice to us, seed from the config
		width, height = v.configuration.ScreenWidth, v.configuration.ScreenHeight
	}
	if err := ValidateExtent(width, height); err != nil {
		return err
	}

	v.surfaceConfig = SurfaceConfiguration{
		Format:         format,
		ColorSpace:     colorSpace,
		Width:          width,
		Height:         height,
		PresentMode:    vk.PresentModeFifo,
		CompositeAlpha: ChooseCompositeAlpha(capabilities.SupportedCompositeAlpha),
		ImageCount: ClampImageCount(v.configuration.SwapchainSize,
			capabilities.MinImageCount, capabilities.MaxImageCount),
	}

	/* Size-independent resources */
	if err := v.createRenderPass(); err != nil {
		return err
	}
	if err := v.createCommandPool(); err != nil {
		return err
	}
	if err := v.createSynchronization(); err != nil {
		return err
	}

	/* Apply the surface configuration */
	if err := v.applyConfiguration(vk.NullSwapchain); err != nil {
		return err
	}

	v.ready = true
	return nil
}

// Resize implements interface. A zero dimension (minimised window) is
// ignored so the applied configuration never becomes zero-area.
func (v *VulkanRenderer) Resize(width, height uint32) error {
	if !v.ready {
		return nil
	}
	if width == 0 || height == 0 {
		return nil
	}
	v.surfaceConfig.SetExtent(width, height)
	return v.reconfigure()
}

// Draw implements interface
func (v *VulkanRenderer) Draw() error {
	result := vk.AcquireNextImage(v.logicalDevice, v.swapchain, vk.MaxUint64, v.imageAvailableSemaphore, vk.NullFence, &v.imageIndex)
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal {
		if err := v.reconfigure(); err != nil {
			return err
		}
		result = vk.AcquireNextImage(v.logicalDevice, v.swapchain, vk.MaxUint64, v.imageAvailableSemaphore, vk.NullFence, &v.imageIndex)
	}
	if err := vk.Error(result); err != nil {
		return fmt.Errorf("%w: vk.AcquireNextImage(): %s", ErrFrameAcquisition, err.Error())
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{v.imageAvailableSemaphore},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{v.commandBuffers[v.imageIndex]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{v.renderFinishedSemaphore},
	}}

	if err := vk.Error(vk.QueueSubmit(v.deviceQueue, 1, submit, vk.NullFence)); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{v.renderFinishedSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{v.swapchain},
		PImageIndices:      []uint32{v.imageIndex},
	}

	presentResult := vk.QueuePresent(v.deviceQueue, &presentInfo)
	if presentResult == vk.ErrorOutOfDate || presentResult == vk.Suboptimal {
		return v.reconfigure()
	}
	if err := vk.Error(presentResult); err != nil {
		return errors.New("vk.QueuePresent(): " + err.Error())
	}
	return nil
}

// Configuration implements interface
func (v *VulkanRenderer) Configuration() SurfaceConfiguration {
	return v.surfaceConfig
}

// reconfigure re-applies the surface configuration after a size change
// or an out-of-date acquire, reusing the retired swapchain for resource
// carry-over.
func (v *VulkanRenderer) reconfigure() error {
	vk.DeviceWaitIdle(v.logicalDevice)
	v.releaseSurfaceResources()

	oldSwapchain := v.swapchain
	if err := v.applyConfiguration(oldSwapchain); err != nil {
		return err
	}
	if oldSwapchain != vk.NullSwapchain {
		vk.DestroySwapchain(v.logicalDevice, oldSwapchain, nil)
	}
	return nil
}

// applyConfiguration builds every resource that depends on the current
// surface configuration.
func (v *VulkanRenderer) applyConfiguration(oldSwapchain vk.Swapchain) error {
	if err := v.createSwapchain(oldSwapchain); err != nil {
		return err
	}
	if err := v.createImageViews(); err != nil {
		return err
	}
	if err := v.createFramebuffers(); err != nil {
		return err
	}
	return v.recordCommandBuffers()
}

func (v *VulkanRenderer) surfaceCapabilities() (vk.SurfaceCapabilities, error) {
	var capabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(v.physicalDevice, v.surface, &capabilities)); err != nil {
		return capabilities, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()
	return capabilities, nil
}

func (v *VulkanRenderer) createSwapchain(oldSwapchain vk.Swapchain) error {
	capabilities, err := v.surfaceCapabilities()
	if err != nil {
		return err
	}

	// An out-of-date reconfiguration arrives without a resize event;
	// the surface itself then knows the real client size.
	if oldSwapchain != vk.NullSwapchain {
		width, height := capabilities.CurrentExtent.Width, capabilities.CurrentExtent.Height
		if width != undefinedExtent && height != undefinedExtent && width > 0 && height > 0 {
			v.surfaceConfig.SetExtent(width, height)
		}
	}

	var swapchain vk.Swapchain
	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          v.surface,
		MinImageCount:    v.surfaceConfig.ImageCount,
		ImageFormat:      v.surfaceConfig.Format,
		ImageColorSpace:  v.surfaceConfig.ColorSpace,
		ImageExtent:      v.surfaceConfig.Extent(),
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     vk.SurfaceTransformIdentityBit,
		CompositeAlpha:   v.surfaceConfig.CompositeAlpha,
		PresentMode:      v.surfaceConfig.PresentMode,
		Clipped:          vk.True,
		ImageArrayLayers: 1,
		ImageSharingMode: vk.SharingModeExclusive,
		OldSwapchain:     oldSwapchain,
	}

	if err := vk.Error(vk.CreateSwapchain(v.logicalDevice, &scci, nil, &swapchain)); err != nil {
		return errors.New("vk.CreateSwapchain(): " + err.Error())
	}
	v.swapchain = swapchain

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, nil)); err != nil {
		return errors.New("vk.GetSwapchainImages(num): " + err.Error())
	}
	v.swapchainImages = make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, v.swapchainImages)); err != nil {
		return errors.New("vk.GetSwapchainImages(images): " + err.Error())
	}
	return nil
}

func (v *VulkanRenderer) createImageViews() error {
	for idx := 0; idx < len(v.swapchainImages); idx++ {
		ivci := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    v.swapchainImages[idx],
			ViewType: vk.ImageViewType2d,
			Format:   v.surfaceConfig.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}

		var imageView vk.ImageView
		if err := vk.Error(vk.CreateImageView(v.logicalDevice, &ivci, nil, &imageView)); err != nil {
			return fmt.Errorf("vk.CreateImageView()[%d]: %s", idx, err.Error())
		}
		v.swapchainImageViews = append(v.swapchainImageViews, imageView)
	}
	return nil
}

// createRenderPass builds the single clear-only pass: one color
// attachment loaded with a clear and stored for presentation.
func (v *VulkanRenderer) createRenderPass() error {
	attachments := []vk.AttachmentDescription{{
		Format:         v.surfaceConfig.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachmentRef := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorAttachmentRef)),
		PColorAttachments:    colorAttachmentRef,
	}

	rpci := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{subpassDependency},
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(v.logicalDevice, &rpci, nil, &renderPass)); err != nil {
		return errors.New("vk.CreateRenderPass(): " + err.Error())
	}
	v.renderPass = renderPass
	return nil
}

func (v *VulkanRenderer) createFramebuffers() error {
	for _, imageView := range v.swapchainImageViews {
		attachments := []vk.ImageView{imageView}
		fci := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      v.renderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           v.surfaceConfig.Width,
			Height:          v.surfaceConfig.Height,
			Layers:          1,
		}

		var framebuffer vk.Framebuffer
		if err := vk.Error(vk.CreateFramebuffer(v.logicalDevice, &fci, nil, &framebuffer)); err != nil {
			return errors.New("vk.CreateFramebuffer(): " + err.Error())
		}
		v.framebuffers = append(v.framebuffers, framebuffer)
	}
	return nil
}

func (v *VulkanRenderer) createCommandPool() error {
	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: v.queueFamilyIndex,
	}

	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(v.logicalDevice, &cpci, nil, &commandPool)); err != nil {
		return errors.New("vk.CreateCommandPool(): " + err.Error())
	}
	v.commandPool = commandPool
	return nil
}

// recordCommandBuffers pre-records one command buffer per swapchain
// image, each holding exactly one render pass that clears the whole
// attachment to the configured color. No pipeline is bound and no draw
// is issued.
func (v *VulkanRenderer) recordCommandBuffers() error {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        v.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(len(v.framebuffers)),
	}

	commandBuffers := make([]vk.CommandBuffer, len(v.framebuffers))
	if err := vk.Error(vk.AllocateCommandBuffers(v.logicalDevice, &cbai, commandBuffers)); err != nil {
		return errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}
	v.commandBuffers = commandBuffers

	clearColor := v.configuration.ClearColor
	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor([]float32{
		clearColor.X(), clearColor.Y(), clearColor.Z(), clearColor.W(),
	})

	for idx, commandBuffer := range v.commandBuffers {
		cbbi := vk.CommandBufferBeginInfo{
			SType: vk.StructureTypeCommandBufferBeginInfo,
			Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit),
		}
		if err := vk.Error(vk.BeginCommandBuffer(commandBuffer, &cbbi)); err != nil {
			return fmt.Errorf("vk.BeginCommandBuffer()[%d]: %s", idx, err.Error())
		}

		rpbi := vk.RenderPassBeginInfo{
			SType:       vk.StructureTypeRenderPassBeginInfo,
			RenderPass:  v.renderPass,
			Framebuffer: v.framebuffers[idx],
			RenderArea: vk.Rect2D{
				Offset: vk.Offset2D{X: 0, Y: 0},
				Extent: v.surfaceConfig.Extent(),
			},
			ClearValueCount: uint32(len(clearValues)),
			PClearValues:    clearValues,
		}
		vk.CmdBeginRenderPass(commandBuffer, &rpbi, vk.SubpassContentsInline)
		vk.CmdEndRenderPass(commandBuffer)

		if err := vk.Error(vk.EndCommandBuffer(commandBuffer)); err != nil {
			return fmt.Errorf("vk.EndCommandBuffer()[%d]: %s", idx, err.Error())
		}
	}
	return nil
}

func (v *VulkanRenderer) createSynchronization() error {
	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var (
		imageAvailableSemaphore vk.Semaphore
		renderFinishedSemaphore vk.Semaphore
	)

	if err := vk.Error(vk.CreateSemaphore(v.logicalDevice, &sci, nil, &imageAvailableSemaphore)); err != nil {
		return errors.New("vk.CreateSemaphore(): " + err.Error())
	}
	if err := vk.Error(vk.CreateSemaphore(v.logicalDevice, &sci, nil, &renderFinishedSemaphore)); err != nil {
		return errors.New("vk.CreateSemaphore(): " + err.Error())
	}

	v.imageAvailableSemaphore = imageAvailableSemaphore
	v.renderFinishedSemaphore = renderFinishedSemaphore
	return nil
}

// releaseSurfaceResources drops everything rebuilt on reconfiguration.
// The swapchain itself is handed over as OldSwapchain and destroyed by
// the caller; its images are owned by it and are not destroyed here.
func (v *VulkanRenderer) releaseSurfaceResources() {
	if len(v.commandBuffers) > 0 {
		vk.FreeCommandBuffers(v.logicalDevice, v.commandPool, uint32(len(v.commandBuffers)), v.commandBuffers)
		v.commandBuffers = nil
	}

	for _, framebuffer := range v.framebuffers {
		vk.DestroyFramebuffer(v.logicalDevice, framebuffer, nil)
	}
	v.framebuffers = nil

	for _, imageView := range v.swapchainImageViews {
		vk.DestroyImageView(v.logicalDevice, imageView, nil)
	}
	v.swapchainImageViews = nil
	v.swapchainImages = nil
}

// Destroy implements interface
func (v *VulkanRenderer) Destroy() {
	if !v.ready {
		return
	}
	vk.DeviceWaitIdle(v.logicalDevice)

	vk.DestroySemaphore(v.logicalDevice, v.imageAvailableSemaphore, nil)
	vk.DestroySemaphore(v.logicalDevice, v.renderFinishedSemaphore, nil)

	v.releaseSurfaceResources()

	vk.DestroyCommandPool(v.logicalDevice, v.commandPool, nil)
	vk.DestroyRenderPass(v.logicalDevice, v.renderPass, nil)
	vk.DestroySwapchain(v.logicalDevice, v.swapchain, nil)
	vk.DestroyDevice(v.logicalDevice, nil)
}
