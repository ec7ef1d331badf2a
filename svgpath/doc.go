// Package svgpath maps interpreted paths and text runs from PDF user space
// to output coordinates and serializes them as path data.
//
// Every point goes through four steps in order: the path's CTM (unless
// disabled), the crop box offset, the Y flip to a top-left origin and the
// uniform output scale.
//
//	tr, err := svgpath.NewTransformer(
//		svgpath.WithPageSize(612, 792),
//		svgpath.WithOutputSize(1224, 1584),
//	)
//	if err != nil {
//		return err
//	}
//	for _, el := range tr.Emit(res.Paths) {
//		fmt.Println(el.Markup()) // <path d="M 20 1564 L 100 1564 Z" style="..."></path>
//	}
//
// Output is deterministic: the same input and configuration always give
// byte-identical strings.
package svgpath
