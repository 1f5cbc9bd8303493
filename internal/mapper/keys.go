package mapper

// Key names one attribute of the Ecuapass cartaporte form.
type Key string

const (
	KeyDistrito                Key = "01_Distrito"
	KeyNumeroCPIC              Key = "02_NumeroCPIC"
	KeyMRN                     Key = "03_MRN"
	KeyMSN                     Key = "04_MSN"
	KeyTipoProcedimiento       Key = "05_TipoProcedimiento"
	KeyEmpresaTransporte       Key = "06_EmpresaTransporte"
	KeyDepositoMercancia       Key = "07_DepositoMercancia"
	KeyDirTransportista        Key = "08_DirTransportista"
	KeyNroIdentificacion       Key = "09_NroIdentificacion"
	KeyPaisRemitente           Key = "10_PaisRemitente"
	KeyTipoIdRemitente         Key = "11_TipoIdRemitente"
	KeyNroIdRemitente          Key = "12_NroIdRemitente"
	KeyNroCertSanitario        Key = "13_NroCertSanitario"
	KeyNombreRemitente         Key = "14_NombreRemitente"
	KeyDireccionRemitente      Key = "15_DireccionRemitente"
	KeyPaisDestinatario        Key = "16_PaisDestinatario"
	KeyTipoIdDestinatario      Key = "17_TipoIdDestinatario"
	KeyNroIdDestinatario       Key = "18_NroIdDestinatario"
	KeyNombreDestinatario      Key = "19_NombreDestinatario"
	KeyDireccionDestinatario   Key = "20_DireccionDestinatario"
	KeyPaisConsignatario       Key = "21_PaisConsignatario"
	KeyTipoIdConsignatario     Key = "22_TipoIdConsignatario"
	KeyNroIdConsignatario      Key = "23_NroIdConsignatario"
	KeyNombreConsignatario     Key = "24_NombreConsignatario"
	KeyDireccionConsignatario  Key = "25_DireccionConsignatario"
	KeyNombreNotificado        Key = "26_NombreNotificado"
	KeyDireccionNotificado     Key = "27_DireccionNotificado"
	KeyPaisNotificado          Key = "28_PaisNotificado"
	KeyPaisRecepcion           Key = "29_PaisRecepcion"
	KeyCiudadRecepcion         Key = "30_CiudadRecepcion"
	KeyFechaRecepcion          Key = "31_FechaRecepcion"
	KeyPaisEmbarque            Key = "32_PaisEmbarque"
	KeyCiudadEmbarque          Key = "33_CiudadEmbarque"
	KeyFechaEmbarque           Key = "34_FechaEmbarque"
	KeyPaisEntrega             Key = "35_PaisEntrega"
	KeyCiudadEntrega           Key = "36_CiudadEntrega"
	KeyFechaEntrega            Key = "37_FechaEntrega"
	KeyCondicionesTransporte   Key = "38_CondicionesTransporte"
	KeyCondicionesPago         Key = "39_CondicionesPago"
	KeyPesoNeto                Key = "40_PesoNeto"
	KeyPesoBruto               Key = "41_PesoBruto"
	KeyTotalBultos             Key = "42_TotalBultos"
	KeyVolumen                 Key = "43_Volumen"
	KeyOtraUnidad              Key = "44_OtraUnidad"
	KeyPrecioMercancias        Key = "45_PrecioMercancias"
	KeyIncoterm                Key = "46_INCOTERM"
	KeyTipoMoneda              Key = "47_TipoMoneda"
	KeyPaisMercancia           Key = "48_PaisMercancia"
	KeyCiudadMercancia         Key = "49_CiudadMercancia"
	KeyGastosRemitente         Key = "50_GastosRemitente"
	KeyMonedaRemitente         Key = "51_MonedaRemitente"
	KeyGastosDestinatario      Key = "52_GastosDestinatario"
	KeyMonedaDestinatario      Key = "53_MonedaDestinatario"
	KeyOtrosGastosRemitente    Key = "54_OtrosGastosRemitente"
	KeyOtrosMonedaRemitente    Key = "55_OtrosMonedaRemitente"
	KeyOtrosGastosDestinatario Key = "56_OtrosGastosDestinatario"
	KeyOtrosMonedaDestinatario Key = "57_OtrosMonedaDestinataio" // misspelled in the form-filling tool
	KeyTotalRemitente          Key = "58_TotalRemitente"
	KeyTotalDestinatario       Key = "59_TotalDestinatario"
	KeyDocsRemitente           Key = "60_DocsRemitente"
	KeyFechaEmision            Key = "61_FechaEmision"
	KeyPaisEmision             Key = "62_PaisEmision"
	KeyCiudadEmision           Key = "63_CiudadEmision"
	KeyInstrucciones           Key = "64_Instrucciones"
	KeyObservaciones           Key = "65_Observaciones"
	KeySecuencia               Key = "66_Secuencia"
	KeyCantidadBultos          Key = "67_CantidadBultos"
	KeyTipoEmbalaje            Key = "68_TipoEmbalaje"
	KeyMarcasNumeros           Key = "69_MarcasNumeros"
	KeyDetallePesoNeto         Key = "70_PesoNeto"
	KeyDetallePesoBruto        Key = "71_PesoBruto"
	KeyDetalleVolumen          Key = "72_Volumen"
	KeyDetalleOtraUnidad       Key = "73_OtraUnidad"
	KeySubpartida              Key = "74_Subpartida"
	KeyIMO1                    Key = "75_IMO1"
	KeyIMO2                    Key = "76_IMO2"
	KeyIMO3                    Key = "77_IMO2" // the form-filling tool expects this duplicate name
	KeyDetalleNroCertSanitario Key = "78_NroCertSanitario"
	KeyDescripcionCarga        Key = "79_DescripcionCarga"
)

// Keys lists every record key in form order.
var Keys = []Key{
	KeyDistrito, KeyNumeroCPIC, KeyMRN, KeyMSN, KeyTipoProcedimiento,
	KeyEmpresaTransporte, KeyDepositoMercancia, KeyDirTransportista, KeyNroIdentificacion,
	KeyPaisRemitente, KeyTipoIdRemitente, KeyNroIdRemitente, KeyNroCertSanitario,
	KeyNombreRemitente, KeyDireccionRemitente,
	KeyPaisDestinatario, KeyTipoIdDestinatario, KeyNroIdDestinatario,
	KeyNombreDestinatario, KeyDireccionDestinatario,
	KeyPaisConsignatario, KeyTipoIdConsignatario, KeyNroIdConsignatario,
	KeyNombreConsignatario, KeyDireccionConsignatario,
	KeyNombreNotificado, KeyDireccionNotificado, KeyPaisNotificado,
	KeyPaisRecepcion, KeyCiudadRecepcion, KeyFechaRecepcion,
	KeyPaisEmbarque, KeyCiudadEmbarque, KeyFechaEmbarque,
	KeyPaisEntrega, KeyCiudadEntrega, KeyFechaEntrega,
	KeyCondicionesTransporte, KeyCondicionesPago,
	KeyPesoNeto, KeyPesoBruto, KeyTotalBultos, KeyVolumen, KeyOtraUnidad,
	KeyPrecioMercancias, KeyIncoterm, KeyTipoMoneda, KeyPaisMercancia, KeyCiudadMercancia,
	KeyGastosRemitente, KeyMonedaRemitente, KeyGastosDestinatario, KeyMonedaDestinatario,
	KeyOtrosGastosRemitente, KeyOtrosMonedaRemitente, KeyOtrosGastosDestinatario, KeyOtrosMonedaDestinatario,
	KeyTotalRemitente, KeyTotalDestinatario,
	KeyDocsRemitente, KeyFechaEmision, KeyPaisEmision, KeyCiudadEmision,
	KeyInstrucciones, KeyObservaciones,
	KeySecuencia, KeyCantidadBultos, KeyTipoEmbalaje, KeyMarcasNumeros,
	KeyDetallePesoNeto, KeyDetallePesoBruto, KeyDetalleVolumen, KeyDetalleOtraUnidad,
	KeySubpartida, KeyIMO1, KeyIMO2, KeyIMO3,
	KeyDetalleNroCertSanitario, KeyDescripcionCarga,
}

var keyIndex = func() map[Key]int {
	m := make(map[Key]int, len(Keys))
	for i, k := range Keys {
		m[k] = i
	}
	return m
}()
