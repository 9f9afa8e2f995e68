/*
go-detdecode provides the decoding stage of a YOLO style object detection
pipeline.  It turns the raw per image output tensor of candidate boxes
(coordinates, objectness and per class scores) into a final, deduplicated list
of detections in the pixel coordinates of the original image.

It also owns the forward letterbox transform (aspect preserving resize plus
symmetric padding onto a fixed canvas) that must be applied to an image before
it is passed to the Model, because decoding has to invert exactly that
transform to map the detections back onto the source image.

The package is split into:

  - preprocess: the letterbox transform and its inverse
  - postprocess: the detection decoder and Non-Maximum Suppression
  - pipeline: a reusable prepare/decode pipeline and a pool of them for
    concurrent use by an inference driver

Model loading and inference are not part of this module, the raw output tensor
is handed over as an Output.

See example code and usage in the example subdirectory.
*/
package detdecode
