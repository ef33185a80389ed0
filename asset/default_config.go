package asset

// DefaultConfig is the embedded default configuration, also written to disk on first run
const DefaultConfig = `# phosphor configuration

[render]
width = 1920
height = 1080
fps = 30
# Seconds spent typing the text, then blinking the cursor
text_duration = 2.0
cursor_duration = 2.0
# Palette depth for the GIF encoder, 1-100
quality = 50

[font]
# TrueType/OpenType file; empty or missing falls back to the built-in monospace face
path = "FSEX302.ttf"
size = 30.0
color = [0, 255, 0]
line_space = 45

[effects]
# Screen curvature coefficient, 0 disables
warp = 0.15
# Odd row darkening, 0-1
scanline = 0.3
# Gaussian noise standard deviation, normalized units
noise = 0.03
# Noise particle size in pixels
noise_scale = 1.0
# "monochrome" or "color"
noise_mode = "monochrome"
# Halo spread in pixels and halo alpha
glow = 3
glow_alpha = 128
# Seconds of power-on fade, 0 disables
power_on = 0.0

[text]
tab = true
tab_length = 2
pad_lines = false
show_cpu = false
# Non-empty values replace the detected host information
override_os = ""
override_kernel = ""
override_de = ""
override_shell = ""
override_memory = ""

[output]
gif = "boot.gif"
wav = "boot.wav"
# 0 seeds noise from the clock
seed = 0

[audio]
enabled = false
live = false
volume = 0.6
sample_rate = 44100
`
